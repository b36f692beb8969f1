package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/domain/reporting"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Billing grouped by period or department",
		Example: `  # Monthly billing of the current year
  invoicectl report --file projects.json

  # Weekly buckets
  invoicectl report --mode semana`,
		RunE: runReport,
	}
	cmd.Flags().StringP("mode", "m", string(entities.GroupingMonthly), "daily, weekly, monthly, annual or department")
	cmd.Flags().IntP("year", "y", 0, "Year for the monthly mode (default: current year)")
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	rawMode, _ := cmd.Flags().GetString("mode")
	year, _ := cmd.Flags().GetInt("year")

	mode, ok := entities.ParseGroupingMode(rawMode)
	if !ok {
		return fmt.Errorf("invalid mode %q", rawMode)
	}
	if year == 0 {
		year = time.Now().Year()
	}
	if year < 1900 || year > 9999 {
		return fmt.Errorf("invalid year %d: must be between 1900 and 9999", year)
	}

	projects, err := loadExport(cmd)
	if err != nil {
		return err
	}
	rows := reporting.Aggregate(projects, mode, year)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	if mode == entities.GroupingDepartment {
		fmt.Fprintln(w, "DEPARTAMENTO\tTOTAL\t")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t\n", r.Label, r.Total.StringFixed(2))
		}
		return w.Flush()
	}

	fmt.Fprintln(w, "PERIODO\tPENDIENTE\tENVIADA\tPAGADA\tTOTAL\t")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			r.Label, r.Pending.StringFixed(2), r.Sent.StringFixed(2), r.Paid.StringFixed(2), r.Total.StringFixed(2))
	}
	return w.Flush()
}
