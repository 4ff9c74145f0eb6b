// Package stats derives the dashboard and analytics figures from a state
// snapshot. Nothing here is stored; every figure is recomputed on demand.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/td0m/crm/pkg/crm"
	"github.com/td0m/crm/pkg/state"
	"github.com/td0m/crm/pkg/store"
)

// Dashboard holds the headline cards.
type Dashboard struct {
	TotalCustomers  int             `json:"totalCustomers"`
	ActiveCustomers int             `json:"activeCustomers"`
	Pipeline        decimal.Decimal `json:"pipeline"`       // sum of deal values of active and pending customers
	ConversionRate  float64         `json:"conversionRate"` // active / total, 0 when there are no customers
	OpenTasks       int             `json:"openTasks"`
	OverdueTasks    int             `json:"overdueTasks"`
	UpcomingEvents  int             `json:"upcomingEvents"` // scheduled events starting within the next 7 days
}

// Point is one bar or slice of a chart.
type Point struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func Compute(s state.State, now time.Time) Dashboard {
	d := Dashboard{Pipeline: decimal.Zero}
	for _, c := range s.Customers.List() {
		d.TotalCustomers++
		switch c.Status {
		case crm.CustomerActive:
			d.ActiveCustomers++
			d.Pipeline = d.Pipeline.Add(c.DealValue)
		case crm.CustomerPending:
			d.Pipeline = d.Pipeline.Add(c.DealValue)
		}
	}
	if d.TotalCustomers > 0 {
		d.ConversionRate = float64(d.ActiveCustomers) / float64(d.TotalCustomers)
	}
	for _, t := range s.Tasks.List() {
		if t.Status != crm.TaskDone {
			d.OpenTasks++
		}
		if t.Overdue(now) {
			d.OverdueTasks++
		}
	}
	for _, e := range state.EventsBetween(s.Events.List(), now, now.AddDate(0, 0, 7)) {
		if e.Status == crm.EventScheduled && !e.Start.Before(now) {
			d.UpcomingEvents++
		}
	}
	return d
}

// CustomersByStatus counts customers per status, in the order statuses are
// declared.
func CustomersByStatus(cs store.Customers) []Point {
	counts := map[crm.CustomerStatus]int{}
	for _, c := range cs.List() {
		counts[c.Status]++
	}
	out := make([]Point, 0, len(crm.CustomerStatuses))
	for _, st := range crm.CustomerStatuses {
		out = append(out, Point{Name: string(st), Value: float64(counts[st])})
	}
	return out
}

// TasksByColumn counts tasks per kanban column.
func TasksByColumn(ts store.Tasks) []Point {
	out := make([]Point, 0, len(crm.Columns))
	for _, col := range crm.Columns {
		out = append(out, Point{Name: col.Title, Value: float64(len(store.ByStatus(ts, col.Status)))})
	}
	return out
}

// DealValueByCompany sums deal values per company, largest first. Ties keep
// alphabetical order.
func DealValueByCompany(cs store.Customers) []Point {
	sums := map[string]decimal.Decimal{}
	for _, c := range cs.List() {
		sums[c.Company] = sums[c.Company].Add(c.DealValue)
	}
	out := make([]Point, 0, len(sums))
	for company, sum := range sums {
		v, _ := sum.Float64()
		out = append(out, Point{Name: company, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// NewCustomersByMonth counts customers by creation month ("2006-01") over the
// last n months ending with the month of now.
func NewCustomersByMonth(cs store.Customers, now time.Time, n int) []Point {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(n - 1), 0)
	out := make([]Point, n)
	index := map[string]int{}
	for i := range out {
		name := start.AddDate(0, i, 0).Format("2006-01")
		out[i] = Point{Name: name}
		index[name] = i
	}
	for _, c := range cs.List() {
		if i, ok := index[c.CreatedAt.In(now.Location()).Format("2006-01")]; ok {
			out[i].Value++
		}
	}
	return out
}
