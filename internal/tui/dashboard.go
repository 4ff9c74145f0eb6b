package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/crm/internal/ui"
	"github.com/td0m/crm/pkg/stats"
)

func (a *app) viewDashboard() string {
	p := a.palette
	now := a.now()
	d := stats.Compute(a.snap, now)

	card := lipgloss.NewStyle().
		Padding(0, 2, 0, 0).
		MarginRight(2)
	value := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card.Render(p.Muted().Render("Customers")+"\n"+value.Render(fmt.Sprintf("%d", d.TotalCustomers))+p.Muted().Render(fmt.Sprintf(" (%d active)", d.ActiveCustomers))),
		card.Render(p.Muted().Render("Pipeline")+"\n"+value.Render(d.Pipeline.StringFixed(2))),
		card.Render(p.Muted().Render("Conversion")+"\n"+value.Render(fmt.Sprintf("%.0f%%", d.ConversionRate*100))),
		card.Render(p.Muted().Render("Open tasks")+"\n"+value.Render(fmt.Sprintf("%d", d.OpenTasks))+overdue(d.OverdueTasks)),
		card.Render(p.Muted().Render("This week")+"\n"+value.Render(fmt.Sprintf("%d", d.UpcomingEvents))+p.Muted().Render(" events")),
	)

	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		a.chart("Customers by status", stats.CustomersByStatus(a.snap.Customers), 0),
		a.chart("Tasks by column", stats.TasksByColumn(a.snap.Tasks), 0),
	)
	companies := stats.DealValueByCompany(a.snap.Customers)
	if len(companies) > 5 {
		companies = companies[:5]
	}
	money := lipgloss.JoinHorizontal(lipgloss.Top,
		a.chart("Top companies by deal value", companies, 2),
		a.chart("New customers", stats.NewCustomersByMonth(a.snap.Customers, now, 6), 0),
	)
	return cards + "\n\n" + charts + "\n" + money
}

func overdue(n int) string {
	if n == 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(ui.Red).Render(fmt.Sprintf(" (%d overdue)", n))
}

const barWidth = 24

// chart renders points as horizontal bars scaled to the largest value.
func (a *app) chart(title string, points []stats.Point, decimals int) string {
	p := a.palette
	var top float64
	for _, pt := range points {
		top = math.Max(top, pt.Value)
	}
	bar := lipgloss.NewStyle().Foreground(p.Accent2)

	lines := []string{p.Title().Render(title)}
	if len(points) == 0 {
		lines = append(lines, p.Muted().Render("no data"))
	}
	for _, pt := range points {
		n := 0
		if top > 0 {
			n = int(math.Round(pt.Value / top * barWidth))
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			p.Muted().Render(pad(pt.Name, 14)),
			bar.Render(strings.Repeat("█", n)+strings.Repeat(" ", barWidth-n)),
			p.Text().Render(fmt.Sprintf("%.*f", decimals, pt.Value)),
		))
	}
	return lipgloss.NewStyle().Width(60).MarginBottom(1).Render(strings.Join(lines, "\n"))
}
