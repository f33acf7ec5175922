package comparecmd

import (
	"testing"

	"github.com/ttb-review/labelcheck/internal/compare"
)

func TestBuildOptions(t *testing.T) {
	opts, err := buildOptions(runParams{
		skipFields:       []string{"governmentWarning", " netContents "},
		contextFields:    []string{"bottlerName"},
		thresholds:       []string{"brandName=0.75", "classType = 0.6"},
		ignoreConfidence: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(opts.SkipFields) != 2 || opts.SkipFields[0] != compare.FieldGovernmentWarning {
		t.Errorf("skip fields = %v", opts.SkipFields)
	}
	if len(opts.ContextFields) != 1 || opts.ContextFields[0] != compare.FieldBottlerName {
		t.Errorf("context fields = %v", opts.ContextFields)
	}
	if opts.FuzzyThresholds[compare.FieldBrandName] != 0.75 {
		t.Errorf("brand threshold = %v, want 0.75", opts.FuzzyThresholds[compare.FieldBrandName])
	}
	if opts.FuzzyThresholds[compare.FieldClassType] != 0.6 {
		t.Errorf("class threshold = %v, want 0.6", opts.FuzzyThresholds[compare.FieldClassType])
	}
	if !opts.IgnoreConfidence {
		t.Error("expected IgnoreConfidence to carry through")
	}
}

func TestBuildOptionsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		params runParams
	}{
		{name: "unknown skip field", params: runParams{skipFields: []string{"vintage"}}},
		{name: "unknown context field", params: runParams{contextFields: []string{"vintage"}}},
		{name: "threshold without equals", params: runParams{thresholds: []string{"brandName0.75"}}},
		{name: "threshold not a number", params: runParams{thresholds: []string{"brandName=high"}}},
		{name: "threshold out of range", params: runParams{thresholds: []string{"brandName=1.5"}}},
		{name: "threshold for unknown field", params: runParams{thresholds: []string{"vintage=0.5"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildOptions(tt.params); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDisposition(t *testing.T) {
	if got := disposition(compare.OverallMatch); got != "ready for approval" {
		t.Errorf("disposition(MATCH) = %q", got)
	}
	if got := disposition(compare.OverallMismatch); got != "needs reviewer attention" {
		t.Errorf("disposition(MISMATCH) = %q", got)
	}
	if got := disposition(compare.OverallNeedsReview); got != "needs reviewer attention" {
		t.Errorf("disposition(NEEDS_REVIEW) = %q", got)
	}
}
