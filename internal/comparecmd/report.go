package comparecmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ttb-review/labelcheck/internal/results"
)

// NewReportCmd creates the report command for rendering saved runs.
func NewReportCmd() *cobra.Command {
	var resultsPath string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a saved comparison run",
		Long: `Render a saved comparison run as a human-readable text report, raw JSON,
or CSV rows (one row per field comparison) for spreadsheet review.`,
		Example: `  # Human-readable report with per-field detail
  labelcheck compare report --results runs/run_2026-08-30_10-00-00.yaml

  # CSV for spreadsheet triage
  labelcheck compare report --results runs/run_2026-08-30_10-00-00.yaml --format csv > fields.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(resultsPath, format)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", "Path to a saved run report (.yaml or .json)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, or csv)")

	_ = cmd.MarkFlagRequired("results")

	return cmd
}

func executeReport(resultsPath, format string) error {
	report, err := results.Load(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	switch format {
	case "text":
		return printTextReport(report)
	case "json":
		return printJSONReport(report)
	case "csv":
		return printCSVReport(report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(report *results.RunReport) error {
	printRunSummary(report)

	fmt.Println("\nDetailed Results:")
	fmt.Println("========================================")

	for i, result := range report.Results {
		printRecordDetail(i, result)
	}

	return nil
}

func printJSONReport(report *results.RunReport) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func printCSVReport(report *results.RunReport) error {
	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	header := []string{
		"record_id", "overall_status", "field", "status", "confidence",
		"similarity", "application_value", "extracted_value",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range report.Results {
		for _, fc := range result.Fields {
			similarity := ""
			if fc.SimilarityScore != nil {
				similarity = strconv.FormatFloat(*fc.SimilarityScore, 'f', 4, 64)
			}

			row := []string{
				result.RecordID,
				string(result.OverallStatus),
				string(fc.Field),
				string(fc.Status),
				string(fc.Confidence),
				similarity,
				fc.ApplicationValue,
				fc.ExtractedValue,
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	return nil
}
