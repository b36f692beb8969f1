package main

import (
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "invoicectl",
		Short: "Offline billing reports over a projects export",
		Long: `invoicectl reads a JSON export of registered projects (the body returned
by GET /v1/projects) and prints the same reports the API serves.

Use --file - to read the export from stdin.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("file", "f", "projects.json", "Path to the projects JSON export, or - for stdin")

	root.AddCommand(newReportCmd(), newDepartmentsCmd(), newSummaryCmd())
	return root
}
