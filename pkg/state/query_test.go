package state

import (
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/td0m/crm/pkg/crm"
)

func TestFilterCustomers(t *testing.T) {
	cs := []crm.Customer{
		{ID: "1", Name: "Ana Lima", Email: "ana@acme.com", Company: "Acme", Status: crm.CustomerActive, Source: crm.SourceWebsite},
		{ID: "2", Name: "Bob", Email: "bob@globex.com", Company: "Globex", Status: crm.CustomerPending, Source: crm.SourceReferral},
		{ID: "3", Name: "Carla", Email: "carla@acme.com", Company: "acme", Status: crm.CustomerInactive},
	}
	ids := func(cs []crm.Customer) []crm.ID {
		out := []crm.ID{}
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}
	tests := []struct {
		name   string
		filter CustomerFilter
		want   []crm.ID
	}{
		{"everything", CustomerFilter{}, []crm.ID{"1", "2", "3"}},
		{"all status", CustomerFilter{Status: "all"}, []crm.ID{"1", "2", "3"}},
		{"status", CustomerFilter{Status: crm.CustomerPending}, []crm.ID{"2"}},
		{"search name", CustomerFilter{Search: "  LIMA "}, []crm.ID{"1"}},
		{"search email domain", CustomerFilter{Search: "acme.com"}, []crm.ID{"1", "3"}},
		{"company ignores case", CustomerFilter{Company: "ACME"}, []crm.ID{"1", "3"}},
		{"source", CustomerFilter{Source: crm.SourceReferral}, []crm.ID{"2"}},
		{"combined", CustomerFilter{Company: "acme", Status: crm.CustomerInactive}, []crm.ID{"3"}},
		{"no match", CustomerFilter{Search: "zzz"}, []crm.ID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(ids(FilterCustomers(cs, tt.filter)), tt.want)
		})
	}
}

func TestEventsBetween(t *testing.T) {
	is := is.New(t)
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	es := []crm.Event{
		{ID: "late", Start: day.Add(15 * time.Hour), End: day.Add(16 * time.Hour)},
		{ID: "early", Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)},
		{ID: "overnight", Start: day.Add(-2 * time.Hour), End: day.Add(time.Hour)},
		{ID: "tomorrow", Start: day.Add(30 * time.Hour), End: day.Add(31 * time.Hour)},
		{ID: "yesterday", Start: day.Add(-20 * time.Hour), End: day.Add(-19 * time.Hour)},
	}
	got := EventsBetween(es, day, day.Add(24*time.Hour))
	ids := []crm.ID{}
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	is.Equal(ids, []crm.ID{"overnight", "early", "late"})
}

func TestEventsBetween_Bounds(t *testing.T) {
	is := is.New(t)
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	next := day.Add(24 * time.Hour)
	es := []crm.Event{
		{ID: "ends-at-from", Start: day.Add(-time.Hour), End: day},
		{ID: "starts-at-to", Start: next, End: next.Add(time.Hour)},
		{ID: "instant-at-from", Start: day, End: day},
		{ID: "starts-at-from", Start: day, End: day.Add(time.Hour)},
	}
	ids := []crm.ID{}
	for _, e := range EventsBetween(es, day, next) {
		ids = append(ids, e.ID)
	}
	is.Equal(ids, []crm.ID{"instant-at-from", "starts-at-from"})
}
