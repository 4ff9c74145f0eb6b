// Package tui is the terminal front end. It only reads snapshots from a
// state.Store and dispatches actions to it.
package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/crm/internal/ui"
	"github.com/td0m/crm/pkg/dateinput"
	"github.com/td0m/crm/pkg/logger"
	"github.com/td0m/crm/pkg/state"
	"github.com/td0m/crm/pkg/validate"
)

const (
	headerHeight = 3
	footerHeight = 1
)

type tab int

const (
	tabDashboard tab = iota
	tabCustomers
	tabKanban
	tabCalendar
	tabSettings
)

var tabNames = []string{"Dashboard", "Customers", "Kanban", "Calendar", "Settings"}

type Options struct {
	Log       *logger.Logger
	ExportDir string
	Now       func() time.Time
}

type app struct {
	store       *state.Store
	snap        state.State
	unsubscribe func()
	log         *logger.Logger
	exportDir   string
	now         func() time.Time

	viewport viewport.Model
	tabs     ui.Tabs
	palette  ui.Palette
	width    int

	// at most one of these is active
	form      *form
	submit    func(form) error
	date      *dateinput.Model
	onDate    func(time.Time) error
	searching bool

	status    string
	statusErr bool

	customers customersView
	kanban    kanbanView
	calendar  calendarView
}

// Run starts the program and blocks until the user quits.
func Run(s *state.Store, opts Options) error {
	a := newApp(s, opts)
	defer a.unsubscribe()

	p := tea.NewProgram(a)

	// enable full terminal mode
	p.EnterAltScreen()
	defer p.ExitAltScreen()

	// enable mouse (for scrolling)
	p.EnableMouseAllMotion()
	defer p.DisableMouseAllMotion()

	return p.Start()
}

func newApp(s *state.Store, opts Options) *app {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	a := &app{
		store:     s,
		log:       opts.Log,
		exportDir: opts.ExportDir,
		now:       opts.Now,
		viewport:  viewport.Model{},
		customers: newCustomersView(),
	}
	a.setSnapshot(s.Snapshot())
	a.tabs = ui.NewTabs(tabNames, a.palette)
	a.calendar.from = startOfWeek(a.now())
	a.unsubscribe = s.Subscribe(a.setSnapshot)
	return a
}

func (a *app) setSnapshot(s state.State) {
	a.snap = s
	a.palette = ui.PaletteFor(s.Theme)
	a.tabs.Palette = a.palette
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (a *app) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - headerHeight - footerHeight
		a.tabs.Width = msg.Width
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		cmd = a.keyUpdate(msg)
	case tea.MouseMsg:
		a.viewport, cmd = a.viewport.Update(msg)
	}
	a.render()
	return a, cmd
}

// keyUpdate handles keys differently based on what is open: a form, the date
// prompt, the search box, or the current tab.
func (a *app) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	switch {
	case a.form != nil:
		return a.formKey(msg)
	case a.date != nil:
		return a.dateKey(msg)
	case a.searching:
		return a.searchKey(msg)
	}
	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab", "shift+tab", "alt+1", "alt+2", "alt+3", "alt+4", "alt+5":
		a.tabs, _ = a.tabs.Update(msg)
		a.viewport.YOffset = 0
		a.clearStatus()
		return nil
	}
	switch tab(a.tabs.Value()) {
	case tabCustomers:
		a.customersKey(msg)
	case tabKanban:
		a.kanbanKey(msg)
	case tabCalendar:
		a.calendarKey(msg)
	case tabSettings:
		a.settingsKey(msg)
	}
	return nil
}

func (a *app) formKey(msg tea.KeyMsg) tea.Cmd {
	result, cmd := a.form.update(msg)
	switch result {
	case formCancelled:
		a.closeForm()
	case formSubmitted:
		err := a.submit(*a.form)
		var fields validate.Errors
		switch {
		case errors.As(err, &fields):
			a.form.fail(fields)
		case err != nil:
			a.closeForm()
			a.fail(err)
		default:
			a.closeForm()
		}
	}
	return cmd
}

func (a *app) openForm(f form, submit func(form) error) {
	a.form = &f
	a.submit = submit
	a.clearStatus()
}

func (a *app) closeForm() {
	a.form = nil
	a.submit = nil
}

func (a *app) dateKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.date, a.onDate = nil, nil
		return nil
	case "enter":
		v := a.date.Value()
		if v == nil {
			a.fail(errors.New("unrecognised date: " + a.date.Input()))
			return nil
		}
		err := a.onDate(*v)
		a.date, a.onDate = nil, nil
		a.fail(err)
		return nil
	}
	var cmd tea.Cmd
	*a.date, cmd = a.date.Update(msg)
	return cmd
}

func (a *app) askDate(label string, fn func(time.Time) error) {
	d := dateinput.NewModel(label, a.now)
	a.date = &d
	a.onDate = fn
	a.clearStatus()
}

func (a *app) info(s string) {
	a.status, a.statusErr = s, false
}

// fail shows err on the status line. A nil err is ignored.
func (a *app) fail(err error) {
	if err == nil {
		return
	}
	a.log.Warn().Err(err).Msg("action failed")
	a.status, a.statusErr = err.Error(), true
}

func (a *app) clearStatus() {
	a.status, a.statusErr = "", false
}

func (a *app) render() {
	var content string
	if a.form != nil {
		content = a.form.view(a.palette)
	} else {
		switch tab(a.tabs.Value()) {
		case tabDashboard:
			content = a.viewDashboard()
		case tabCustomers:
			content = a.viewCustomers()
		case tabKanban:
			content = a.viewKanban()
		case tabCalendar:
			content = a.viewCalendar()
		case tabSettings:
			content = a.viewSettings()
		}
	}
	a.viewport.SetContent(lipgloss.NewStyle().Padding(0, 1).Render(content))
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (a *app) View() string {
	a.tabs.Info = a.palette.Muted().Render(a.now().Format("Mon 02 Jan 15:04"))
	var statusline string
	switch {
	case a.date != nil:
		statusline = a.date.View()
	case a.searching:
		statusline = "search: " + a.customers.search.View()
	case a.statusErr:
		statusline = a.palette.Error().Render("✗ " + a.status)
	case a.status != "":
		statusline = a.palette.Muted().Render(a.status)
	default:
		statusline = a.palette.Muted().Render(a.help())
	}
	return a.tabs.View() + a.viewport.View() + "\n" + " " + statusline
}

func (a *app) help() string {
	keys := []string{"tab: switch", "q: quit"}
	switch tab(a.tabs.Value()) {
	case tabCustomers:
		keys = append([]string{"a: add", "e: edit", "s: status", "d: delete", "/: search", "f: filter", "x/X: export"}, keys...)
	case tabKanban:
		keys = append([]string{"a: add", "e: edit", "H/L: move", "J/K: reorder", "D: due", "d: delete"}, keys...)
	case tabCalendar:
		keys = append([]string{"a: add", "e: edit", "r: reschedule", "c: complete", "d: delete", "[/]: week"}, keys...)
	case tabSettings:
		keys = append([]string{"t: toggle theme", "p/s: colors"}, keys...)
	}
	return strings.Join(keys, " • ")
}
