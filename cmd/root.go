package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labelcheck",
		Short: "Label compliance comparison tool for beverage label applications",
		Long: `Labelcheck compares the field values submitted on a beverage label application
against the values an OCR/LLM pipeline extracted from the label images.

It produces per-field match verdicts and an overall compliance status that
help a human reviewer decide whether a label matches its application.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newCompareCmd())

	return cmd
}
