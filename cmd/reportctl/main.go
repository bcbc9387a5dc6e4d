package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "reportctl",
		Short: "Export web tables as reports and manage the theme preference",
		Long: `reportctl turns a table shown on a web page into a downloadable report
and keeps the light/dark theme preference.

Examples:
  reportctl export --html usage.html --table usage-table --title "Monthly Report"
  reportctl export --url http://localhost:5000/usage --table usage-table --title Usage --format xlsx
  reportctl reports show monthly_report_05-06-2024.pdf
  reportctl theme apply
  reportctl theme toggle`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "reportctl.yaml", "Config file (YAML)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newReportsCmd(flags))
	root.AddCommand(newThemeCmd(flags))
	return root
}
