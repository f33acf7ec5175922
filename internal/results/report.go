// Package results persists batch comparison runs and computes run-level
// summary statistics for reporting.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ttb-review/labelcheck/internal/compare"
	"gopkg.in/yaml.v3"
)

// RunConfig echoes the inputs and options a comparison run was executed with.
type RunConfig struct {
	ApplicationsPath string   `yaml:"applications" json:"applications"`
	ExtractedPath    string   `yaml:"extracted" json:"extracted"`
	SkipFields       []string `yaml:"skipfields,omitempty" json:"skip_fields,omitempty"`
	ContextFields    []string `yaml:"contextfields,omitempty" json:"context_fields,omitempty"`
	IgnoreConfidence bool     `yaml:"ignoreconfidence,omitempty" json:"ignore_confidence,omitempty"`
	Timestamp        string   `yaml:"timestamp" json:"timestamp"`
}

// Summary aggregates one batch run.
type Summary struct {
	TotalRecords     int                `yaml:"totalrecords" json:"total_records"`
	MatchRecords     int                `yaml:"matchrecords" json:"match_records"`
	NeedsReview      int                `yaml:"needsreview" json:"needs_review"`
	MismatchRecords  int                `yaml:"mismatchrecords" json:"mismatch_records"`
	FieldMatchRates  map[string]float64 `yaml:"fieldmatchrates" json:"field_match_rates"`
	AverageMatches   float64            `yaml:"averagematches" json:"average_matches"`
	AverageMisses    float64            `yaml:"averagemisses" json:"average_misses"`
}

// RunReport is the persisted form of one batch comparison run.
type RunReport struct {
	RunID   string                      `yaml:"runid" json:"run_id"`
	Config  RunConfig                   `yaml:"config" json:"config"`
	Summary Summary                     `yaml:"summary" json:"summary"`
	Results []*compare.ComparisonResult `yaml:"results" json:"results"`
}

// NewRunReport assembles a report from batch results, ordered by record
// identifier for stable output.
func NewRunReport(config RunConfig, results map[string]*compare.ComparisonResult) *RunReport {
	if config.Timestamp == "" {
		config.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	}

	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ordered := make([]*compare.ComparisonResult, 0, len(results))
	for _, id := range ids {
		ordered = append(ordered, results[id])
	}

	return &RunReport{
		RunID:   uuid.NewString(),
		Config:  config,
		Summary: BuildSummary(ordered),
		Results: ordered,
	}
}

// BuildSummary computes run-level statistics over comparison results.
// Field match rates treat MATCH, LIKELY_MATCH, and CONTEXT as acceptable.
func BuildSummary(results []*compare.ComparisonResult) Summary {
	summary := Summary{
		TotalRecords:    len(results),
		FieldMatchRates: make(map[string]float64),
	}

	fieldAcceptable := make(map[string]int)
	fieldSeen := make(map[string]int)
	totalMatches := 0
	totalMisses := 0

	for _, result := range results {
		switch result.OverallStatus {
		case compare.OverallMatch:
			summary.MatchRecords++
		case compare.OverallNeedsReview:
			summary.NeedsReview++
		case compare.OverallMismatch:
			summary.MismatchRecords++
		}

		totalMatches += result.MatchCount
		totalMisses += result.MismatchCount + result.MissingCount

		for _, fc := range result.Fields {
			name := string(fc.Field)
			fieldSeen[name]++
			if compare.FieldMatches(fc.Status) {
				fieldAcceptable[name]++
			}
		}
	}

	for name, seen := range fieldSeen {
		summary.FieldMatchRates[name] = float64(fieldAcceptable[name]) / float64(seen)
	}

	if len(results) > 0 {
		summary.AverageMatches = float64(totalMatches) / float64(len(results))
		summary.AverageMisses = float64(totalMisses) / float64(len(results))
	}

	return summary
}

// SaveYAML writes the report to a YAML file, creating parent directories.
func (r *RunReport) SaveYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	return nil
}

// SaveJSON writes the report to an indented JSON file.
func (r *RunReport) SaveJSON(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report to JSON: %w", err)
	}

	return nil
}

// Load reads a saved report, detecting YAML or JSON by extension.
func Load(path string) (*RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var report RunReport
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("failed to parse YAML report: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &report); err != nil {
			return nil, fmt.Errorf("failed to parse JSON report: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported report format: %s (supported: .yaml, .json)", filepath.Ext(path))
	}

	return &report, nil
}
