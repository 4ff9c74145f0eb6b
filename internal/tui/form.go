package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/crm/internal/ui"
	"github.com/td0m/crm/pkg/validate"
)

type field struct {
	key   string // json name, matches validate.Errors keys
	label string
	hint  string
	input textinput.Model
}

// form is a vertical list of text inputs. It does not know what it edits,
// the owner reads the values back on submit.
type form struct {
	title  string
	fields []field
	focus  int
	errors validate.Errors
}

type formResult int

const (
	formEditing formResult = iota
	formSubmitted
	formCancelled
)

func newForm(title string, fields ...field) form {
	f := form{title: title, fields: fields}
	f.setFocus(0)
	return f
}

func newField(key, label, value string) field {
	in := textinput.NewModel()
	in.Prompt = ""
	in.CharLimit = 120
	in.Width = 40
	in.SetValue(value)
	return field{key: key, label: label, input: in}
}

func (f field) withHint(hint string) field {
	f.hint = hint
	return f
}

func (f *form) setFocus(i int) {
	f.focus = clamp(i, 0, len(f.fields)-1)
	for j := range f.fields {
		if j == f.focus {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

// update routes a key to the focused input. Enter on the last field submits,
// esc cancels.
func (f *form) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return formCancelled, nil
	case "up", "shift+tab":
		f.setFocus(f.focus - 1)
		return formEditing, nil
	case "down", "tab":
		f.setFocus(f.focus + 1)
		return formEditing, nil
	case "enter":
		if f.focus == len(f.fields)-1 {
			return formSubmitted, nil
		}
		f.setFocus(f.focus + 1)
		return formEditing, nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return formEditing, cmd
}

func (f form) value(key string) string {
	for _, fl := range f.fields {
		if fl.key == key {
			return strings.TrimSpace(fl.input.Value())
		}
	}
	return ""
}

// fail records field errors, moving focus to the first field that has one.
func (f *form) fail(errs validate.Errors) {
	f.errors = errs
	for i, fl := range f.fields {
		if _, ok := errs[fl.key]; ok {
			f.setFocus(i)
			return
		}
	}
}

func (f form) view(p ui.Palette) string {
	var (
		label = lipgloss.NewStyle().Foreground(p.Secondary).Width(14)
		focus = lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Width(14)
		hint  = lipgloss.NewStyle().Foreground(p.Faded)
	)
	var b strings.Builder
	b.WriteString(p.Title().Render(f.title) + "\n\n")
	for i, fl := range f.fields {
		l := label
		if i == f.focus {
			l = focus
		}
		b.WriteString(l.Render(fl.label) + fl.input.View())
		if msg, ok := f.errors[fl.key]; ok {
			b.WriteString(" " + p.Error().Render(msg))
		} else if fl.hint != "" && i == f.focus {
			b.WriteString(" " + hint.Render(fl.hint))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + hint.Render("enter: next/save • up/down: move • esc: cancel"))
	return b.String()
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
