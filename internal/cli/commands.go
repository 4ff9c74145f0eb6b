package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/td0m/crm/internal/tui"
	"github.com/td0m/crm/pkg/crm"
	"github.com/td0m/crm/pkg/export"
	"github.com/td0m/crm/pkg/seed"
	"github.com/td0m/crm/pkg/state"
	"github.com/td0m/crm/pkg/stats"
)

func newTUICommand(e *env) *cobra.Command {
	var exportDir string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openStore(false)
			if err != nil {
				return err
			}
			e.log.Info().Str("state", e.cfg.Data.StateFile).Msg("starting ui")
			return tui.Run(s, tui.Options{Log: e.log, ExportDir: exportDir})
		},
	}
	cmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory exports are written to")
	return cmd
}

func newExportCommand(e *env) *cobra.Command {
	var (
		format string
		out    string
		filter state.CustomerFilter
		status string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export customers as CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := e.openStore(true)
			if err != nil {
				return err
			}
			filter.Status = crm.CustomerStatus(status)
			customers := state.FilterCustomers(s.Snapshot().Customers.List(), filter)

			if out == "" || out == "-" {
				err = export.Write(cmd.OutOrStdout(), f, customers)
			} else {
				err = export.WriteFile(out, f, customers)
			}
			if err != nil {
				return err
			}
			e.log.Info().Str("format", string(f)).Str("out", out).Int("customers", len(customers)).Msg("customers exported")
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	cmd.Flags().StringVar(&out, "out", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&status, "status", "", "only customers with this status")
	cmd.Flags().StringVar(&filter.Search, "search", "", "only customers whose name, email or company contains this")
	cmd.Flags().StringVar(&filter.Company, "company", "", "only customers of this company")
	return cmd
}

func newValidateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a data file without loading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := seed.Read(args[0])
			if err != nil {
				return err
			}
			problems := d.Check()
			w := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintln(w, p.String())
			}
			if len(problems) > 0 {
				return fmt.Errorf("%s: %d invalid records", args[0], len(problems))
			}
			fmt.Fprintf(w, "%s: %d customers, %d tasks, %d events ok\n", args[0], len(d.Customers), len(d.Tasks), len(d.Events))
			return nil
		},
	}
}

type statsReport struct {
	Dashboard         stats.Dashboard `json:"dashboard"`
	CustomersByStatus []stats.Point   `json:"customersByStatus"`
	TasksByColumn     []stats.Point   `json:"tasksByColumn"`
	DealsByCompany    []stats.Point   `json:"dealsByCompany"`
	NewCustomers      []stats.Point   `json:"newCustomers"`
}

func newStatsCommand(e *env) *cobra.Command {
	var (
		asJSON bool
		months int
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openStore(true)
			if err != nil {
				return err
			}
			snap, now := s.Snapshot(), time.Now()
			r := statsReport{
				Dashboard:         stats.Compute(snap, now),
				CustomersByStatus: stats.CustomersByStatus(snap.Customers),
				TasksByColumn:     stats.TasksByColumn(snap.Tasks),
				DealsByCompany:    stats.DealValueByCompany(snap.Customers),
				NewCustomers:      stats.NewCustomersByMonth(snap.Customers, now, months),
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			return writeStats(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().IntVar(&months, "months", 6, "months of new customers to show")
	return cmd
}

func writeStats(out io.Writer, r statsReport) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	d := r.Dashboard
	fmt.Fprintf(w, "Customers\t%d (%d active)\n", d.TotalCustomers, d.ActiveCustomers)
	fmt.Fprintf(w, "Pipeline\t%s\n", d.Pipeline.StringFixed(2))
	fmt.Fprintf(w, "Conversion\t%.0f%%\n", d.ConversionRate*100)
	fmt.Fprintf(w, "Open tasks\t%d (%d overdue)\n", d.OpenTasks, d.OverdueTasks)
	fmt.Fprintf(w, "Events next 7 days\t%d\n", d.UpcomingEvents)
	for _, section := range []struct {
		title  string
		points []stats.Point
	}{
		{"Customers by status", r.CustomersByStatus},
		{"Tasks by column", r.TasksByColumn},
		{"Deal value by company", r.DealsByCompany},
		{"New customers", r.NewCustomers},
	} {
		fmt.Fprintf(w, "\n%s\n", section.title)
		for _, p := range section.points {
			fmt.Fprintf(w, "  %s\t%g\n", p.Name, p.Value)
		}
	}
	return w.Flush()
}

func newDumpCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the loaded state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openStore(false)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s.Snapshot())
		},
	}
}
