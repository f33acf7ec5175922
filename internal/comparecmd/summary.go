package comparecmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/ttb-review/labelcheck/internal/compare"
	"github.com/ttb-review/labelcheck/internal/results"
)

var (
	matchColor    = color.New(color.FgGreen, color.Bold)
	reviewColor   = color.New(color.FgYellow, color.Bold)
	mismatchColor = color.New(color.FgRed, color.Bold)
)

// overallBadge renders the aggregate verdict as a colored badge.
func overallBadge(status compare.OverallStatus) string {
	switch status {
	case compare.OverallMatch:
		return matchColor.Sprint("MATCH")
	case compare.OverallNeedsReview:
		return reviewColor.Sprint("NEEDS_REVIEW")
	case compare.OverallMismatch:
		return mismatchColor.Sprint("MISMATCH")
	}
	return string(status)
}

// statusBadge renders a field status with the same palette.
func statusBadge(status compare.MatchStatus) string {
	switch status {
	case compare.StatusMatch:
		return matchColor.Sprint(string(status))
	case compare.StatusLikelyMatch, compare.StatusMissing:
		return reviewColor.Sprint(string(status))
	case compare.StatusMismatch:
		return mismatchColor.Sprint(string(status))
	}
	return string(status)
}

// disposition maps overall status to a reviewer-facing queue disposition.
// This mapping is deliberately a CLI concern, not an engine one.
func disposition(status compare.OverallStatus) string {
	if status == compare.OverallMatch {
		return "ready for approval"
	}
	return "needs reviewer attention"
}

func printRunSummary(report *results.RunReport) {
	fmt.Println("\n========================================")
	fmt.Println("Label Comparison Summary")
	fmt.Println("========================================")
	fmt.Printf("Run ID:             %s\n", report.RunID)
	fmt.Printf("Applications:       %s\n", report.Config.ApplicationsPath)
	fmt.Printf("Extractions:        %s\n", report.Config.ExtractedPath)
	fmt.Println()
	fmt.Printf("Total Records:      %d\n", report.Summary.TotalRecords)
	fmt.Printf("Full Matches:       %d\n", report.Summary.MatchRecords)
	fmt.Printf("Needs Review:       %d\n", report.Summary.NeedsReview)
	fmt.Printf("Mismatches:         %d\n", report.Summary.MismatchRecords)
	fmt.Println()
	fmt.Println("Field Match Rates:")

	// Sort fields for consistent output
	var fields []string
	for field := range report.Summary.FieldMatchRates {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		fmt.Printf("  %s: %.1f%%\n", field, report.Summary.FieldMatchRates[field]*100)
	}
	fmt.Println("========================================")
}

func printRecordDetail(index int, result *compare.ComparisonResult) {
	fmt.Printf("\n[%d] Record ID: %s\n", index+1, result.RecordID)
	fmt.Printf("  Overall: %s (%s)\n", overallBadge(result.OverallStatus), disposition(result.OverallStatus))
	fmt.Printf("  Counts: %d match, %d likely, %d mismatch, %d missing\n",
		result.MatchCount, result.LikelyMatchCount, result.MismatchCount, result.MissingCount)

	fmt.Println("  Fields:")
	for _, fc := range result.Fields {
		line := fmt.Sprintf("    %-18s %s", fc.Field, statusBadge(fc.Status))
		if fc.SimilarityScore != nil {
			line += fmt.Sprintf(" (similarity %.2f)", *fc.SimilarityScore)
		}
		line += fmt.Sprintf(" [%s]", strings.ToLower(string(fc.Confidence)))
		fmt.Println(line)

		if fc.Status == compare.StatusMismatch {
			fmt.Printf("      application: %q\n", fc.ApplicationValue)
			fmt.Printf("      extracted:   %q\n", fc.ExtractedValue)
		}
	}
}
