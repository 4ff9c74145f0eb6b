package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var tabContainer = lipgloss.NewStyle().Padding(1, 1)

type Tabs struct {
	tabs []string
	i    int

	Width   int
	Info    string
	Palette Palette
}

// NewTabs creates a new tabs ui bubbletea model
func NewTabs(tabs []string, p Palette) Tabs {
	return Tabs{tabs: tabs, Palette: p}
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m Tabs) Init() tea.Cmd {
	return nil
}

// Update switches tabs on alt+N, tab and shift+tab.
func (m Tabs) Update(msg tea.Msg) (Tabs, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch s := msg.String(); {
		case s == "tab":
			m.Set((m.i + 1) % len(m.tabs))
		case s == "shift+tab":
			m.Set((m.i + len(m.tabs) - 1) % len(m.tabs))
		case len(s) == 5 && strings.HasPrefix(s, "alt+") && s[4] >= '1' && s[4] <= '9':
			m.Set(int(s[4] - '1'))
		}
	}
	return m, nil
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m Tabs) View() string {
	var (
		active   = lipgloss.NewStyle().Foreground(m.Palette.Accent).Bold(true)
		inactive = lipgloss.NewStyle().Foreground(m.Palette.Secondary)
		divider  = lipgloss.NewStyle().Foreground(m.Palette.Faded)
	)
	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		r := inactive
		if i == m.i {
			r = active
		}
		tabs[i] = r.Render(t)
	}
	w := lipgloss.Width
	left := strings.Join(tabs, divider.Render(" | "))
	right := m.Info
	space := lipgloss.NewStyle().Width(max(m.Width-2-w(left)-w(right), 0)).Render("")
	return tabContainer.Render(lipgloss.JoinHorizontal(lipgloss.Center, left, space, right)) + "\n"
}

func (m Tabs) Value() int {
	return m.i
}

func (m *Tabs) Set(i int) {
	m.i = min(max(i, 0), len(m.tabs)-1)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
