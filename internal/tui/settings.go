package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/crm/pkg/state"
	"github.com/td0m/crm/pkg/store"
	"github.com/td0m/crm/pkg/validate"
)

func (a *app) settingsKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "t":
		a.fail(a.store.Dispatch(state.ToggleTheme{}))
	case "p":
		a.editColor("Primary color", a.snap.Theme.PrimaryColor, func(c string) state.Action {
			return state.SetPrimaryColor{Color: c}
		})
	case "s":
		a.editColor("Secondary color", a.snap.Theme.SecondaryColor, func(c string) state.Action {
			return state.SetSecondaryColor{Color: c}
		})
	}
}

func (a *app) editColor(title, current string, action func(string) state.Action) {
	f := newForm(title, newField("color", "Color", current).withHint("#rgb or #rrggbb"))
	a.openForm(f, func(f form) error {
		err := a.store.Dispatch(action(f.value("color")))
		if errors.Is(err, store.ErrInvalidColor) {
			return validate.Errors{"color": "Color must be #rgb or #rrggbb"}
		}
		return err
	})
}

func (a *app) viewSettings() string {
	p := a.palette
	t := a.snap.Theme
	swatch := func(c string) string {
		return lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("    ") + " " + c
	}
	label := p.Muted().Copy().Width(18)
	lines := []string{
		p.Title().Render("Settings"),
		"",
		label.Render("Theme") + p.Text().Render(string(t.Mode)) + p.Muted().Render("  (t to switch to "+string(t.Mode.Opposite())+")"),
		label.Render("Primary color") + swatch(t.PrimaryColor),
		label.Render("Secondary color") + swatch(t.SecondaryColor),
		"",
		p.Muted().Render(fmt.Sprintf("%d customers • %d tasks • %d events in memory", a.snap.Customers.Len(), a.snap.Tasks.Len(), a.snap.Events.Len())),
	}
	return strings.Join(lines, "\n")
}
