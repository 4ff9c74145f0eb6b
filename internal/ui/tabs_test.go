package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"
	"github.com/td0m/crm/pkg/crm"
)

func TestTabs(t *testing.T) {
	is := is.New(t)
	tabs := NewTabs([]string{"a", "b", "c"}, PaletteFor(crm.DefaultTheme()))

	tabs, _ = tabs.Update(tea.KeyMsg{Type: tea.KeyTab})
	is.Equal(tabs.Value(), 1)
	tabs, _ = tabs.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	tabs, _ = tabs.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	is.Equal(tabs.Value(), 2)
	tabs, _ = tabs.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}, Alt: true})
	is.Equal(tabs.Value(), 0)

	tabs.Set(10)
	is.Equal(tabs.Value(), 2)
}

func TestPaletteFor(t *testing.T) {
	is := is.New(t)
	th := crm.DefaultTheme()
	is.Equal(PaletteFor(th).Background, light.Background)
	is.Equal(string(PaletteFor(th).Accent), th.PrimaryColor)

	th.Mode = crm.Dark
	is.Equal(PaletteFor(th).Background, dark.Background)
}
