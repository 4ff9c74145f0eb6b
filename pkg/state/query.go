package state

import (
	"sort"
	"strings"
	"time"

	"github.com/td0m/crm/pkg/crm"
)

// CustomerFilter narrows the customer table. Zero values match everything.
type CustomerFilter struct {
	Status  crm.CustomerStatus // "" or "all" for any
	Search  string             // case-insensitive, name/email/company
	Company string
	Source  crm.Source
}

func FilterCustomers(cs []crm.Customer, f CustomerFilter) []crm.Customer {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []crm.Customer{}
	for _, c := range cs {
		if f.Status != "" && f.Status != "all" && c.Status != f.Status {
			continue
		}
		if f.Company != "" && !strings.EqualFold(c.Company, f.Company) {
			continue
		}
		if f.Source != "" && c.Source != f.Source {
			continue
		}
		if search != "" && !matches(search, c.Name, c.Email, c.Company) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matches(search string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// EventsBetween returns the events overlapping [from, to), earliest first. An
// event ending exactly at from is outside the window; a zero-length event
// starting at from is inside it.
func EventsBetween(es []crm.Event, from, to time.Time) []crm.Event {
	out := []crm.Event{}
	for _, e := range es {
		if e.Start.Before(to) && (e.End.After(from) || !e.Start.Before(from)) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// CustomerName resolves a weak customer reference for display. Dangling
// references resolve to "".
func (s State) CustomerName(id crm.ID) string {
	if id == "" {
		return ""
	}
	c, ok := s.Customers.Get(id)
	if !ok {
		return ""
	}
	return c.Name
}
