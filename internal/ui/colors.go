package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/crm/pkg/crm"
)

const (
	Blue   = lipgloss.Color("#4db7ff")
	Green  = lipgloss.Color("#00a352")
	Red    = lipgloss.Color("#c42912")
	Yellow = lipgloss.Color("#c4b810")
	Orange = lipgloss.Color("#c27510")
)

// Palette is the set of colors a view renders with.
type Palette struct {
	Background lipgloss.Color
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Faded      lipgloss.Color

	// Accent and Accent2 come from the theme's primary and secondary color.
	Accent  lipgloss.Color
	Accent2 lipgloss.Color
}

var (
	dark = Palette{
		Background: "#000",
		Primary:    "#fff",
		Secondary:  "#888",
		Faded:      "#555",
	}
	light = Palette{
		Background: "#fff",
		Primary:    "#111",
		Secondary:  "#555",
		Faded:      "#aaa",
	}
)

func PaletteFor(t crm.Theme) Palette {
	p := light
	if t.Mode == crm.Dark {
		p = dark
	}
	p.Accent = lipgloss.Color(t.PrimaryColor)
	p.Accent2 = lipgloss.Color(t.SecondaryColor)
	return p
}

func (p Palette) Text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Primary)
}

func (p Palette) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Secondary)
}

func (p Palette) Title() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
}

func (p Palette) Cursor() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Primary).Background(p.Faded)
}

func (p Palette) Error() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Red).Bold(true)
}

func CustomerStatusColor(s crm.CustomerStatus) lipgloss.Color {
	switch s {
	case crm.CustomerActive:
		return Green
	case crm.CustomerPending:
		return Yellow
	default:
		return Red
	}
}

func PriorityColor(p crm.Priority) lipgloss.Color {
	switch p {
	case crm.PriorityUrgent:
		return Red
	case crm.PriorityHigh:
		return Orange
	case crm.PriorityMedium:
		return Yellow
	default:
		return Blue
	}
}

func EventTypeIcon(t crm.EventType) string {
	switch t {
	case crm.EventMeeting:
		return "👥"
	case crm.EventCall:
		return "📞"
	case crm.EventEmail:
		return "✉"
	case crm.EventTask:
		return "✔"
	case crm.EventDeadline:
		return "⚑"
	default:
		return "∙"
	}
}
