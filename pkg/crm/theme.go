package crm

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

func (m Mode) Valid() bool {
	return m == Light || m == Dark
}

// Opposite returns the other mode. Invalid modes flip to light.
func (m Mode) Opposite() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

type Theme struct {
	Mode           Mode   `json:"mode" yaml:"mode"`
	PrimaryColor   string `json:"primaryColor" yaml:"primaryColor"`
	SecondaryColor string `json:"secondaryColor" yaml:"secondaryColor"`
}

func DefaultTheme() Theme {
	return Theme{
		Mode:           Light,
		PrimaryColor:   "#3b82f6",
		SecondaryColor: "#64748b",
	}
}
