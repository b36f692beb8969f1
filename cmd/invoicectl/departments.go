package main

import (
	"fmt"
	"text/tabwriter"

	"increa_invoicing/internal/domain/reporting"

	"github.com/spf13/cobra"
)

func newDepartmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "departments",
		Short: "Profitability per department, most profitable first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := loadExport(cmd)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "DEPARTAMENTO\tPROYECTOS\tFACTURADO\tPAGADO\tPENDIENTE\tRENTABILIDAD\t")
			for _, a := range reporting.AnalyzeDepartments(projects) {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%.2f%%\t\n",
					a.Department.Label(), a.Projects,
					a.Billed.StringFixed(2), a.Paid.StringFixed(2), a.Outstanding.StringFixed(2),
					a.Profitability)
			}
			return w.Flush()
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Billing totals over every project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := loadExport(cmd)
			if err != nil {
				return err
			}

			s := reporting.Summarize(projects)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Proyectos\t%d\n", s.Projects)
			fmt.Fprintf(w, "Facturado\t%s\n", s.Billed.StringFixed(2))
			fmt.Fprintf(w, "Pagado\t%s\n", s.Paid.StringFixed(2))
			fmt.Fprintf(w, "Pendiente de cobro\t%s\n", s.Outstanding.StringFixed(2))
			return w.Flush()
		},
	}
}
