// Package dateinput is a text input for dates typed the way people say them.
package dateinput

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	indicator = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	checkmark = indicator.Copy().
			Foreground(lipgloss.AdaptiveColor{Light: "#00ad3b", Dark: "#73F59F"}).
			Render("✓")

	cross = indicator.Copy().
		Foreground(lipgloss.AdaptiveColor{Light: "#c42912", Dark: "#FF5047"}).
		Render("✗")

	faded = lipgloss.AdaptiveColor{Light: "#666", Dark: "#999"}
)

type Model struct {
	Label string

	i     textinput.Model
	now   func() time.Time
	value *time.Time
}

func NewModel(label string, now func() time.Time) Model {
	i := textinput.NewModel()
	i.Focus()
	i.CharLimit = 32
	i.Prompt = ""
	if now == nil {
		now = time.Now
	}
	return Model{Label: label, i: i, now: now}
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.i, cmd = m.i.Update(msg)
		m.value = nil
		if t, err := Parse(m.i.Value(), m.now()); err == nil {
			m.value = &t
		}
		return m, cmd
	}
	return m, nil
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m Model) View() string {
	indicator := cross
	if m.i.Value() == "" {
		indicator = ""
	} else if m.value != nil {
		indicator = checkmark + " " + m.value.Format("Mon 02 Jan 2006 15:04") + " (" + Format(*m.value, m.now()) + ")"
	}
	return lipgloss.NewStyle().Foreground(faded).Render(m.Label+": ") + m.i.View() + indicator
}

// Value is the parsed date, nil while the input is empty or unparsable.
func (m Model) Value() *time.Time {
	return m.value
}

func (m Model) Input() string {
	return m.i.Value()
}

func (m *Model) SetValue(t *time.Time) {
	m.value = t
	if t == nil {
		m.i.SetValue("")
		return
	}
	m.i.SetValue(t.Format("2006-01-02"))
}

func (m *Model) Reset() {
	m.SetValue(nil)
}
