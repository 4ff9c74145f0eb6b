package store

import (
	"regexp"

	"github.com/td0m/crm/pkg/crm"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func SetMode(t crm.Theme, mode crm.Mode) (crm.Theme, error) {
	if !mode.Valid() {
		return t, ErrInvalidMode
	}
	t.Mode = mode
	return t, nil
}

func Toggle(t crm.Theme) crm.Theme {
	t.Mode = t.Mode.Opposite()
	return t
}

func SetPrimaryColor(t crm.Theme, color string) (crm.Theme, error) {
	if !hexColor.MatchString(color) {
		return t, ErrInvalidColor
	}
	t.PrimaryColor = color
	return t, nil
}

func SetSecondaryColor(t crm.Theme, color string) (crm.Theme, error) {
	if !hexColor.MatchString(color) {
		return t, ErrInvalidColor
	}
	t.SecondaryColor = color
	return t, nil
}
