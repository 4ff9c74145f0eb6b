package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/td0m/crm/internal/ui"
	"github.com/td0m/crm/pkg/crm"
	"github.com/td0m/crm/pkg/export"
	"github.com/td0m/crm/pkg/state"
	"github.com/td0m/crm/pkg/validate"
)

type customersView struct {
	cursor int
	filter state.CustomerFilter
	search textinput.Model
}

func newCustomersView() customersView {
	i := textinput.NewModel()
	i.Prompt = ""
	i.Width = 30
	return customersView{search: i}
}

// statusFilters is the order f cycles through.
var statusFilters = append([]crm.CustomerStatus{"all"}, crm.CustomerStatuses...)

func (a *app) visibleCustomers() []crm.Customer {
	return state.FilterCustomers(a.snap.Customers.List(), a.customers.filter)
}

func (a *app) selectedCustomer() (crm.Customer, bool) {
	cs := a.visibleCustomers()
	if a.customers.cursor >= len(cs) {
		return crm.Customer{}, false
	}
	return cs[a.customers.cursor], true
}

func (a *app) setCustomerCursor(i int) {
	a.customers.cursor = clamp(i, 0, max(len(a.visibleCustomers())-1, 0))
}

func (a *app) customersKey(msg tea.KeyMsg) {
	v := &a.customers
	switch msg.String() {
	case "j", "down":
		a.setCustomerCursor(v.cursor + 1)
	case "k", "up":
		a.setCustomerCursor(v.cursor - 1)
	case "g":
		a.setCustomerCursor(0)
	case "G":
		a.setCustomerCursor(len(a.visibleCustomers()))
	case "a":
		a.editCustomer(crm.Customer{Status: crm.CustomerActive})
	case "e", "enter":
		if c, ok := a.selectedCustomer(); ok {
			a.editCustomer(c)
		}
	case "d", "delete":
		if c, ok := a.selectedCustomer(); ok {
			if err := a.store.Dispatch(state.DeleteCustomer{ID: c.ID}); err != nil {
				a.fail(err)
				return
			}
			a.setCustomerCursor(v.cursor)
			a.info("deleted " + c.Name)
		}
	case "s":
		if c, ok := a.selectedCustomer(); ok {
			c.Status = nextStatus(c.Status)
			a.fail(a.store.Dispatch(state.UpdateCustomer{Customer: c}))
		}
	case "f":
		v.filter.Status = statusFilters[(indexOf(statusFilters, v.filter.Status)+1)%len(statusFilters)]
		a.setCustomerCursor(0)
	case "/":
		a.searching = true
		v.search.Focus()
	case "x":
		a.exportCustomers(export.CSV)
	case "X":
		a.exportCustomers(export.XLSX)
	}
}

func (a *app) searchKey(msg tea.KeyMsg) tea.Cmd {
	v := &a.customers
	switch msg.String() {
	case "esc":
		v.search.SetValue("")
		fallthrough
	case "enter":
		a.searching = false
		v.search.Blur()
	default:
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		v.filter.Search = v.search.Value()
		a.setCustomerCursor(0)
		return cmd
	}
	v.filter.Search = v.search.Value()
	a.setCustomerCursor(v.cursor)
	return nil
}

func nextStatus(s crm.CustomerStatus) crm.CustomerStatus {
	all := crm.CustomerStatuses
	return all[(indexOf(all, s)+1)%len(all)]
}

func indexOf[T comparable](all []T, v T) int {
	for i, x := range all {
		if x == v {
			return i
		}
	}
	return 0
}

// editCustomer opens the customer form. A customer without an id is added on
// submit.
func (a *app) editCustomer(c crm.Customer) {
	title := "Edit customer"
	if c.ID == "" {
		title = "New customer"
	}
	deal := ""
	if !c.DealValue.IsZero() {
		deal = c.DealValue.String()
	}
	f := newForm(title,
		newField("name", "Name", c.Name),
		newField("email", "Email", c.Email),
		newField("phone", "Phone", c.Phone),
		newField("company", "Company", c.Company),
		newField("status", "Status", string(c.Status)).withHint("active, inactive or pending"),
		newField("dealValue", "Deal value", deal),
		newField("source", "Source", string(c.Source)).withHint("website, referral, social, email, phone or other"),
		newField("tags", "Tags", strings.Join(c.Tags, ", ")).withHint("comma separated"),
		newField("notes", "Notes", c.Notes),
	)
	a.openForm(f, func(f form) error {
		cf, errs := customerForm(f)
		if errs != nil {
			return errs
		}
		if c.ID == "" {
			created, err := a.store.NewCustomer(cf)
			if err == nil {
				a.info("added " + created.Name)
			}
			return err
		}
		return a.store.EditCustomer(c.ID, cf)
	})
}

func customerForm(f form) (validate.CustomerForm, validate.Errors) {
	cf := validate.CustomerForm{
		Name:    f.value("name"),
		Email:   f.value("email"),
		Phone:   f.value("phone"),
		Company: f.value("company"),
		Status:  crm.CustomerStatus(f.value("status")),
		Source:  crm.Source(f.value("source")),
		Tags:    splitList(f.value("tags")),
		Notes:   f.value("notes"),
	}
	if s := f.value("dealValue"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return cf, validate.Errors{"dealValue": "Deal value must be a number"}
		}
		cf.DealValue = d
	}
	return cf, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (a *app) exportCustomers(f export.Format) {
	name := filepath.Join(a.exportDir, fmt.Sprintf("customers-%s.%s", a.now().Format("20060102-150405"), f))
	cs := a.visibleCustomers()
	if err := export.WriteFile(name, f, cs); err != nil {
		a.fail(err)
		return
	}
	a.log.Info().Str("file", name).Int("customers", len(cs)).Msg("customers exported")
	a.info(fmt.Sprintf("exported %d customers to %s", len(cs), name))
}

func (a *app) viewCustomers() string {
	p := a.palette
	cs := a.visibleCustomers()

	var b strings.Builder
	filter := string(a.customers.filter.Status)
	if filter == "" {
		filter = "all"
	}
	b.WriteString(p.Title().Render("Customers") + p.Muted().Render(fmt.Sprintf("  %d of %d • status: %s", len(cs), a.snap.Customers.Len(), filter)))
	if a.customers.filter.Search != "" {
		b.WriteString(p.Muted().Render(" • search: " + a.customers.filter.Search))
	}
	b.WriteString("\n\n")

	cols := []int{22, 28, 18, 10, 12}
	header := row(cols, "Name", "Email", "Company", "Status", "Deal value")
	b.WriteString(p.Muted().Bold(true).Render(header) + "\n")
	if len(cs) == 0 {
		b.WriteString(p.Muted().Render("no customers, press a to add one") + "\n")
	}
	for i, c := range cs {
		status := lipgloss.NewStyle().Foreground(ui.CustomerStatusColor(c.Status)).Render(pad(string(c.Status), cols[3]))
		line := pad(c.Name, cols[0]) + pad(c.Email, cols[1]) + pad(c.Company, cols[2]) + status + pad(c.DealValue.StringFixed(2), cols[4])
		if i == a.customers.cursor {
			line = p.Cursor().Render(pad(c.Name, cols[0])) + line[len(pad(c.Name, cols[0])):]
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func row(widths []int, cells ...string) string {
	var s string
	for i, c := range cells {
		s += pad(c, widths[i])
	}
	return s
}

// pad cuts or fills s to exactly w cells.
func pad(s string, w int) string {
	r := []rune(s)
	if len(r) >= w {
		if w > 1 {
			return string(r[:w-2]) + "… "
		}
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-len(r))
}
