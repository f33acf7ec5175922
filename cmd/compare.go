package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ttb-review/labelcheck/internal/comparecmd"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Field comparison tools for application/label record pairs",
		Long: `Comparison tools for measuring how well extracted label data matches the
submitted application data.

Supports running batch comparisons over record files (JSONL or Parquet) and
rendering saved comparison runs as text, JSON, or CSV reports.`,
	}

	// Add compare subcommands
	cmd.AddCommand(comparecmd.NewRunCmd())
	cmd.AddCommand(comparecmd.NewReportCmd())

	return cmd
}
