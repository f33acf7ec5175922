package compare

import (
	"fmt"
	"strings"
	"time"
)

// importedSourceType is the application source type for imported products,
// matched case-insensitively. Imported applications do not carry domestic
// bottler data, so the bottler fields become context-only.
const importedSourceType = "imported"

// CompareRecords runs every field comparison for one application/extraction
// pair and derives the overall verdict. The zero-value Options compares all
// eight fields with default thresholds.
func CompareRecords(app ApplicationRecord, extracted ExtractedRecord, opts *Options) (*ComparisonResult, error) {
	if opts == nil {
		opts = &Options{}
	}

	if strings.TrimSpace(app.ID) == "" {
		return nil, &ValidationError{Field: "id", Message: "application record has no identifier"}
	}
	if err := validateFieldList("skipFields", opts.SkipFields); err != nil {
		return nil, err
	}
	if err := validateFieldList("contextFields", opts.ContextFields); err != nil {
		return nil, err
	}
	if err := validateThresholds(opts.FuzzyThresholds); err != nil {
		return nil, err
	}

	skip := fieldSet(opts.SkipFields)
	context := fieldSet(opts.ContextFields)
	if strings.EqualFold(strings.TrimSpace(app.SourceType), importedSourceType) {
		context[FieldBottlerName] = true
		context[FieldBottlerAddress] = true
	}

	result := &ComparisonResult{
		RecordID:   app.ID,
		Fields:     make([]FieldComparison, 0, len(AllFields)),
		ComparedAt: time.Now(),
	}

	for _, ft := range AllFields {
		if skip[ft] {
			continue
		}

		rawApp := app.FieldValue(ft)
		rawExt := extracted.FieldValue(ft)
		appNorm := Normalize(ft, rawApp)
		extNorm := Normalize(ft, rawExt)

		outcome := matchField(ft, appNorm, extNorm, context[ft], opts.FuzzyThresholds)

		var extractionConfidence *float64
		if !opts.IgnoreConfidence && extracted.Confidence != nil {
			if c, ok := extracted.Confidence[ft]; ok {
				extractionConfidence = &c
			}
		}

		result.Fields = append(result.Fields, FieldComparison{
			Field:                 ft,
			ApplicationValue:      rawApp,
			ExtractedValue:        rawExt,
			NormalizedApplication: appNorm,
			NormalizedExtracted:   extNorm,
			Status:                outcome.status,
			Confidence:            determineConfidence(outcome.status, extractionConfidence),
			SimilarityScore:       outcome.similarity,
		})

		switch outcome.status {
		case StatusMatch:
			result.MatchCount++
		case StatusLikelyMatch:
			result.LikelyMatchCount++
		case StatusMismatch:
			result.MismatchCount++
		case StatusMissing:
			// A gap is only reviewable when the application actually
			// submitted a value for the field.
			if appNorm != "" {
				result.MissingCount++
			}
		}
	}

	result.OverallStatus = deriveOverallStatus(result.Fields)

	return result, nil
}

// QuickCompare returns only the overall status for a record pair.
func QuickCompare(app ApplicationRecord, extracted ExtractedRecord, opts *Options) (OverallStatus, error) {
	result, err := CompareRecords(app, extracted, opts)
	if err != nil {
		return "", err
	}
	return result.OverallStatus, nil
}

// CompareBatch compares many record pairs, extracted records keyed by
// application identifier. An application with no extracted record is compared
// against an empty one, so every submitted field reads as missing from the
// label. Comparisons are independent; callers may parallelize instead.
func CompareBatch(applications []ApplicationRecord, extracted map[string]ExtractedRecord, opts *Options) (map[string]*ComparisonResult, error) {
	results := make(map[string]*ComparisonResult, len(applications))
	for _, app := range applications {
		result, err := CompareRecords(app, extracted[app.ID], opts)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", app.ID, err)
		}
		results[app.ID] = result
	}
	return results, nil
}

// FieldMatches reports whether a field outcome should be treated as
// acceptable for review purposes.
func FieldMatches(status MatchStatus) bool {
	switch status {
	case StatusMatch, StatusLikelyMatch, StatusContext:
		return true
	}
	return false
}

// deriveOverallStatus picks the worst non-CONTEXT outcome: any mismatch
// condemns the record, any likely match or gap asks for review.
func deriveOverallStatus(fields []FieldComparison) OverallStatus {
	needsReview := false
	for _, fc := range fields {
		switch fc.Status {
		case StatusMismatch:
			return OverallMismatch
		case StatusLikelyMatch, StatusMissing:
			needsReview = true
		}
	}
	if needsReview {
		return OverallNeedsReview
	}
	return OverallMatch
}

func fieldSet(fields []FieldType) map[FieldType]bool {
	set := make(map[FieldType]bool, len(fields))
	for _, ft := range fields {
		set[ft] = true
	}
	return set
}
