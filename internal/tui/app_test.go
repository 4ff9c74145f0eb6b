package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"
	"github.com/shopspring/decimal"
	"github.com/td0m/crm/pkg/crm"
	"github.com/td0m/crm/pkg/persist"
	"github.com/td0m/crm/pkg/state"
)

var now = time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func newTestApp(t *testing.T) (*app, *state.Store, *persist.Memory) {
	kv := persist.InMemory()
	s := state.New(kv, state.WithClock(clock))
	a := newApp(s, Options{Now: clock, ExportDir: t.TempDir()})
	t.Cleanup(a.unsubscribe)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return a, s, kv
}

func press(a *app, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		a.Update(msg)
	}
}

// fill sets form values by key and submits the form.
func fill(a *app, values map[string]string) {
	for i := range a.form.fields {
		if v, ok := values[a.form.fields[i].key]; ok {
			a.form.fields[i].input.SetValue(v)
		}
	}
	a.form.setFocus(len(a.form.fields) - 1)
	press(a, "enter")
}

func TestAddCustomer(t *testing.T) {
	is := is.New(t)
	a, s, _ := newTestApp(t)
	a.tabs.Set(int(tabCustomers))

	press(a, "a")
	is.True(a.form != nil)

	fill(a, map[string]string{"name": "", "email": "bad", "phone": "5551234567", "company": "Acme"})
	is.True(a.form != nil) // invalid input keeps the form open
	is.Equal(a.form.errors["name"], "Name is required")
	is.Equal(a.form.errors["email"], "Invalid email format")
	is.Equal(a.form.fields[a.form.focus].key, "name")
	is.Equal(s.Snapshot().Customers.Len(), 0)

	fill(a, map[string]string{"name": "Ana Lima", "email": "ana@acme.com", "dealValue": "abc"})
	is.Equal(a.form.errors["dealValue"], "Deal value must be a number")

	fill(a, map[string]string{"dealValue": "1200.50", "tags": "vip, , new"})
	is.True(a.form == nil)
	cs := s.Snapshot().Customers.List()
	is.Equal(len(cs), 1)
	is.Equal(cs[0].Name, "Ana Lima")
	is.Equal(cs[0].Status, crm.CustomerActive)
	is.True(cs[0].DealValue.Equal(decimal.RequireFromString("1200.5")))
	is.Equal(cs[0].Tags, []string{"vip", "new"})
	is.True(strings.Contains(a.viewCustomers(), "Ana Lima"))
}

func seedCustomers(is *is.I, s *state.Store) {
	is.NoErr(s.Dispatch(state.SetCustomers{Items: []crm.Customer{
		{ID: "c1", Name: "Ana", Email: "ana@acme.com", Company: "Acme", Status: crm.CustomerActive, DealValue: decimal.NewFromInt(10)},
		{ID: "c2", Name: "Bob, Jr.", Email: "bob@globex.com", Company: "Globex", Status: crm.CustomerPending},
	}}))
}

func TestCustomers_StatusFilterDelete(t *testing.T) {
	is := is.New(t)
	a, s, _ := newTestApp(t)
	a.tabs.Set(int(tabCustomers))
	seedCustomers(is, s)

	press(a, "j", "s") // bob: pending -> active
	bob, _ := s.Snapshot().Customers.Get("c2")
	is.Equal(bob.Status, crm.CustomerActive)

	press(a, "f", "f") // all -> active -> inactive
	is.Equal(len(a.visibleCustomers()), 0)
	press(a, "f", "f") // pending -> all
	is.Equal(len(a.visibleCustomers()), 2)

	press(a, "g", "d")
	is.Equal(s.Snapshot().Customers.Len(), 1)
	_, ok := s.Snapshot().Customers.Get("c1")
	is.True(!ok)
}

func TestCustomers_Export(t *testing.T) {
	is := is.New(t)
	a, s, _ := newTestApp(t)
	a.tabs.Set(int(tabCustomers))
	seedCustomers(is, s)

	press(a, "x")
	is.True(!a.statusErr)
	files, err := filepath.Glob(filepath.Join(a.exportDir, "customers-*.csv"))
	is.NoErr(err)
	is.Equal(len(files), 1)
	bs, err := os.ReadFile(files[0])
	is.NoErr(err)
	is.Equal(string(bs), "Name,Email,Company,Status,Deal Value\nAna,ana@acme.com,Acme,active,10\n\"Bob, Jr.\",bob@globex.com,Globex,pending,0\n")
}

func TestKanban_Move(t *testing.T) {
	is := is.New(t)
	a, s, _ := newTestApp(t)
	a.tabs.Set(int(tabKanban))
	created := now.Add(-time.Hour)
	is.NoErr(s.Dispatch(state.SetTasks{Items: []crm.Task{
		{ID: "t1", Title: "Call", Status: crm.TaskTodo, Priority: crm.PriorityLow, CreatedAt: created, UpdatedAt: created},
		{ID: "t2", Title: "Mail", Status: crm.TaskTodo, Priority: crm.PriorityHigh, CreatedAt: created, UpdatedAt: created},
	}}))

	press(a, "L")
	t1, _ := s.Snapshot().Tasks.Get("t1")
	is.Equal(t1.Status, crm.TaskInProgress)
	is.Equal(t1.UpdatedAt, created) // status moves leave timestamps alone
	is.Equal(a.kanban.col, 1)

	press(a, "H", "J") // back to todo, then below t2
	ids := []crm.ID{}
	for _, t := range a.column(0) {
		ids = append(ids, t.ID)
	}
	is.Equal(ids, []crm.ID{"t2", "t1"})

	press(a, "a")
	fill(a, map[string]string{"title": "Follow up", "dueDate": "tomorrow", "customerId": "nobody"})
	is.Equal(a.form.errors["customerId"], "No customer named nobody")
	fill(a, map[string]string{"customerId": ""})
	is.True(a.form == nil)
	is.Equal(len(a.column(0)), 3)
	added := a.column(0)[2]
	is.Equal(*added.DueDate, time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC))
}

func TestCalendar_AddEvent(t *testing.T) {
	is := is.New(t)
	a, s, _ := newTestApp(t)
	a.tabs.Set(int(tabCalendar))

	press(a, "a")
	fill(a, map[string]string{"title": "Demo", "start": "fri 3pm", "end": "fri 2pm"})
	is.True(a.form != nil)
	is.Equal(a.form.errors["end"], "End must not be before start")

	fill(a, map[string]string{"end": "fri 4pm"})
	is.True(a.form == nil)
	es := a.visibleEvents()
	is.Equal(len(es), 1)
	is.Equal(es[0].Start, time.Date(2024, time.March, 8, 15, 0, 0, 0, time.UTC))
	is.Equal(es[0].Status, crm.EventScheduled)

	press(a, "c")
	e, _ := s.Snapshot().Events.Get(es[0].ID)
	is.Equal(e.Status, crm.EventCompleted)

	press(a, "]")
	is.Equal(len(a.visibleEvents()), 0)
}

func TestSettings_ToggleTheme(t *testing.T) {
	is := is.New(t)
	a, s, kv := newTestApp(t)
	a.tabs.Set(int(tabSettings))

	press(a, "t")
	is.Equal(s.Snapshot().Theme.Mode, crm.Dark)
	saved, _, _ := kv.Get(state.ThemeKey)
	is.Equal(saved, "dark")
	is.Equal(string(a.tabs.Palette.Background), "#000")

	press(a, "p")
	fill(a, map[string]string{"color": "blue"})
	is.Equal(a.form.errors["color"], "Color must be #rgb or #rrggbb")
	fill(a, map[string]string{"color": "#ff0000"})
	is.True(a.form == nil)
	is.Equal(s.Snapshot().Theme.PrimaryColor, "#ff0000")
}

func TestDashboard_Renders(t *testing.T) {
	is := is.New(t)
	a, s, _ := newTestApp(t)
	seedCustomers(is, s)
	view := a.viewDashboard()
	is.True(strings.Contains(view, "Pipeline"))
	is.True(strings.Contains(view, "10.00"))
}
