// Package comparecmd implements the compare subcommands of the labelcheck CLI.
package comparecmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ttb-review/labelcheck/internal/compare"
	"github.com/ttb-review/labelcheck/internal/dataset"
	"github.com/ttb-review/labelcheck/internal/results"
)

// NewRunCmd creates the run command for batch record comparison.
func NewRunCmd() *cobra.Command {
	var applicationsPath string
	var extractedPath string
	var outputDir string
	var format string
	var skipFields []string
	var contextFields []string
	var thresholds []string
	var ignoreConfidence bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compare application records against label extractions",
		Long: `Run the field comparison engine over a batch of record pairs.

Applications and extractions are loaded from JSONL or Parquet files and paired
by record identifier. Each pair produces per-field match statuses and an
overall verdict; the whole run is saved as a report for later rendering.`,
		Example: `  # Compare two JSONL files and save a YAML report
  labelcheck compare run --applications apps.jsonl --extracted extracted.jsonl

  # Treat the bottler fields as informational and relax the brand threshold
  labelcheck compare run --applications apps.parquet --extracted extracted.parquet \
    --context bottlerName,bottlerAddress --threshold brandName=0.75

  # Ignore the extraction confidence scores entirely
  labelcheck compare run --applications apps.jsonl --extracted extracted.jsonl --ignore-confidence`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(verbose)

			if outputDir == "" {
				outputDir = os.Getenv("LABELCHECK_OUTPUT_DIR")
			}
			if outputDir == "" {
				outputDir = "runs"
			}

			return executeRun(runParams{
				applicationsPath: applicationsPath,
				extractedPath:    extractedPath,
				outputDir:        outputDir,
				format:           format,
				skipFields:       skipFields,
				contextFields:    contextFields,
				thresholds:       thresholds,
				ignoreConfidence: ignoreConfidence,
			})
		},
	}

	cmd.Flags().StringVar(&applicationsPath, "applications", "", "Path to application records file (.jsonl or .parquet)")
	cmd.Flags().StringVar(&extractedPath, "extracted", "", "Path to extracted records file (.jsonl or .parquet)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory for run reports (default $LABELCHECK_OUTPUT_DIR or ./runs)")
	cmd.Flags().StringVar(&format, "format", "yaml", "Report file format (yaml or json)")
	cmd.Flags().StringSliceVar(&skipFields, "skip", nil, "Field types to exclude from the comparison")
	cmd.Flags().StringSliceVar(&contextFields, "context", nil, "Field types to force to CONTEXT status")
	cmd.Flags().StringArrayVar(&thresholds, "threshold", nil, "Fuzzy threshold override, e.g. brandName=0.75 (repeatable)")
	cmd.Flags().BoolVar(&ignoreConfidence, "ignore-confidence", false, "Ignore extraction confidence scores")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	_ = cmd.MarkFlagRequired("applications")
	_ = cmd.MarkFlagRequired("extracted")

	return cmd
}

type runParams struct {
	applicationsPath string
	extractedPath    string
	outputDir        string
	format           string
	skipFields       []string
	contextFields    []string
	thresholds       []string
	ignoreConfidence bool
}

func executeRun(params runParams) error {
	slog.Info("Starting comparison run",
		"applications", params.applicationsPath,
		"extracted", params.extractedPath)

	opts, err := buildOptions(params)
	if err != nil {
		return err
	}

	applicationRows, err := dataset.NewLoader(params.applicationsPath).Applications()
	if err != nil {
		return fmt.Errorf("failed to load applications: %w", err)
	}
	slog.Info("Applications loaded", "records", len(applicationRows))

	extractedRows, err := dataset.NewLoader(params.extractedPath).Extracted()
	if err != nil {
		return fmt.Errorf("failed to load extractions: %w", err)
	}
	slog.Info("Extractions loaded", "records", len(extractedRows))

	batch, err := compare.CompareBatch(
		dataset.Applications(applicationRows),
		dataset.IndexExtracted(extractedRows),
		opts,
	)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	report := results.NewRunReport(results.RunConfig{
		ApplicationsPath: params.applicationsPath,
		ExtractedPath:    params.extractedPath,
		SkipFields:       params.skipFields,
		ContextFields:    params.contextFields,
		IgnoreConfidence: params.ignoreConfidence,
	}, batch)

	var reportPath string
	switch params.format {
	case "yaml":
		reportPath = filepath.Join(params.outputDir, fmt.Sprintf("run_%s.yaml", report.Config.Timestamp))
		err = report.SaveYAML(reportPath)
	case "json":
		reportPath = filepath.Join(params.outputDir, fmt.Sprintf("run_%s.json", report.Config.Timestamp))
		err = report.SaveJSON(reportPath)
	default:
		return fmt.Errorf("unsupported report format: %s", params.format)
	}
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	printRunSummary(report)

	fmt.Printf("\nReport saved to: %s\n", reportPath)
	fmt.Printf("\nRender a detailed report with:\n")
	fmt.Printf("  labelcheck compare report --results %s\n", reportPath)

	return nil
}

// buildOptions converts flag values into engine options.
func buildOptions(params runParams) (*compare.Options, error) {
	opts := &compare.Options{IgnoreConfidence: params.ignoreConfidence}

	for _, name := range params.skipFields {
		ft, err := compare.ParseFieldType(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("--skip: %w", err)
		}
		opts.SkipFields = append(opts.SkipFields, ft)
	}

	for _, name := range params.contextFields {
		ft, err := compare.ParseFieldType(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("--context: %w", err)
		}
		opts.ContextFields = append(opts.ContextFields, ft)
	}

	for _, spec := range params.thresholds {
		name, value, found := strings.Cut(spec, "=")
		if !found {
			return nil, fmt.Errorf("--threshold: expected field=value, got %q", spec)
		}
		ft, err := compare.ParseFieldType(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("--threshold: %w", err)
		}
		threshold, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("--threshold: invalid value %q: %w", value, err)
		}
		if threshold < 0 || threshold > 1 {
			return nil, fmt.Errorf("--threshold: value %v out of [0,1]", threshold)
		}
		if opts.FuzzyThresholds == nil {
			opts.FuzzyThresholds = make(map[compare.FieldType]float64)
		}
		opts.FuzzyThresholds[ft] = threshold
	}

	return opts, nil
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
