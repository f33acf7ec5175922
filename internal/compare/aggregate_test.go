package compare

import (
	"errors"
	"testing"
)

func fieldByType(t *testing.T, result *ComparisonResult, ft FieldType) FieldComparison {
	t.Helper()
	for _, fc := range result.Fields {
		if fc.Field == ft {
			return fc
		}
	}
	t.Fatalf("field %s not found in result", ft)
	return FieldComparison{}
}

func TestCompareRecordsAllMatching(t *testing.T) {
	app := ApplicationRecord{
		ID:             "COLA-2024-001",
		BrandName:      "Jack Daniel's",
		AlcoholContent: "40%",
		NetContents:    "750 mL",
	}
	extracted := ExtractedRecord{
		BrandName:      "Jack Daniels",
		AlcoholContent: "40% Alc./Vol.",
		NetContents:    "750ml",
	}

	result, err := CompareRecords(app, extracted, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Fields) != len(AllFields) {
		t.Fatalf("expected %d field comparisons, got %d", len(AllFields), len(result.Fields))
	}

	// Field order must follow the fixed comparison order.
	for i, fc := range result.Fields {
		if fc.Field != AllFields[i] {
			t.Errorf("field %d = %s, want %s", i, fc.Field, AllFields[i])
		}
	}

	for _, ft := range []FieldType{FieldBrandName, FieldAlcoholContent, FieldNetContents} {
		fc := fieldByType(t, result, ft)
		if fc.Status != StatusMatch {
			t.Errorf("%s status = %s, want MATCH", ft, fc.Status)
		}
		if fc.Confidence != ConfidenceHigh {
			t.Errorf("%s confidence = %s, want HIGH", ft, fc.Confidence)
		}
		if fc.SimilarityScore != nil {
			t.Errorf("%s carries similarity %v on the exact path", ft, *fc.SimilarityScore)
		}
	}

	if result.OverallStatus != OverallMatch {
		t.Errorf("overall status = %s, want MATCH", result.OverallStatus)
	}
	if result.MatchCount != 3 || result.MismatchCount != 0 || result.MissingCount != 0 || result.LikelyMatchCount != 0 {
		t.Errorf("counts = %d/%d/%d/%d, want 3/0/0/0",
			result.MatchCount, result.MismatchCount, result.MissingCount, result.LikelyMatchCount)
	}
	if result.ComparedAt.IsZero() {
		t.Error("ComparedAt not set")
	}
}

func TestCompareRecordsSubstringLikelyMatch(t *testing.T) {
	app := ApplicationRecord{ID: "COLA-2024-002", BrandName: "Old Heritage Bourbon"}
	extracted := ExtractedRecord{BrandName: "Heritage Bourbon"}

	result, err := CompareRecords(app, extracted, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	brand := fieldByType(t, result, FieldBrandName)
	if brand.Status != StatusLikelyMatch {
		t.Errorf("brand status = %s, want LIKELY_MATCH", brand.Status)
	}
	if brand.SimilarityScore == nil || *brand.SimilarityScore != 0.9 {
		t.Errorf("brand similarity = %v, want 0.9", brand.SimilarityScore)
	}
	if brand.Confidence != ConfidenceMedium {
		t.Errorf("brand confidence = %s, want MEDIUM", brand.Confidence)
	}
	if result.OverallStatus != OverallNeedsReview {
		t.Errorf("overall status = %s, want NEEDS_REVIEW", result.OverallStatus)
	}
	if result.LikelyMatchCount != 1 {
		t.Errorf("likely match count = %d, want 1", result.LikelyMatchCount)
	}
}

func TestCompareRecordsMissingWarningForcesReview(t *testing.T) {
	app := ApplicationRecord{
		ID:                "COLA-2024-003",
		BrandName:         "Stone Barn Ale",
		GovernmentWarning: CanonicalGovernmentWarning,
	}
	extracted := ExtractedRecord{
		BrandName: "Stone Barn Ale",
		// Warning not detected on the label.
	}

	result, err := CompareRecords(app, extracted, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	warning := fieldByType(t, result, FieldGovernmentWarning)
	if warning.Status != StatusMissing {
		t.Errorf("warning status = %s, want MISSING", warning.Status)
	}
	if warning.Confidence != ConfidenceLow {
		t.Errorf("warning confidence = %s, want LOW", warning.Confidence)
	}
	if result.OverallStatus != OverallNeedsReview {
		t.Errorf("overall status = %s, want NEEDS_REVIEW", result.OverallStatus)
	}
	if result.MissingCount != 1 {
		t.Errorf("missing count = %d, want 1", result.MissingCount)
	}
}

func TestCompareRecordsImportedAutoContext(t *testing.T) {
	app := ApplicationRecord{
		ID:             "COLA-2024-004",
		BrandName:      "Glen Moray",
		SourceType:     "Imported",
		BottlerName:    "Domestic Bottler Inc",
		BottlerAddress: "1 Main Street",
	}
	extracted := ExtractedRecord{
		BrandName:      "Glen Moray",
		BottlerName:    "Totally Different Name",
		BottlerAddress: "99 Other Road",
	}

	result, err := CompareRecords(app, extracted, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, ft := range []FieldType{FieldBottlerName, FieldBottlerAddress} {
		fc := fieldByType(t, result, ft)
		if fc.Status != StatusContext {
			t.Errorf("%s status = %s, want CONTEXT for imported source", ft, fc.Status)
		}
		if fc.Confidence != ConfidenceLow {
			t.Errorf("%s confidence = %s, want LOW", ft, fc.Confidence)
		}
	}

	// The bottler differences must not condemn the record.
	if result.OverallStatus != OverallMatch {
		t.Errorf("overall status = %s, want MATCH", result.OverallStatus)
	}
	if result.MismatchCount != 0 {
		t.Errorf("mismatch count = %d, want 0", result.MismatchCount)
	}
}

func TestCompareRecordsContextOverrideExcludedFromAggregate(t *testing.T) {
	app := ApplicationRecord{ID: "COLA-2024-005", BrandName: "River Bend", ClassType: "Porter"}
	extracted := ExtractedRecord{BrandName: "Completely Unrelated", ClassType: "Porter"}

	baseline, err := CompareRecords(app, extracted, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if baseline.OverallStatus != OverallMismatch {
		t.Fatalf("baseline overall = %s, want MISMATCH", baseline.OverallStatus)
	}

	withContext, err := CompareRecords(app, extracted, &Options{
		ContextFields: []FieldType{FieldBrandName},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	brand := fieldByType(t, withContext, FieldBrandName)
	if brand.Status != StatusContext {
		t.Errorf("brand status = %s, want CONTEXT", brand.Status)
	}
	if withContext.OverallStatus != OverallMatch {
		t.Errorf("overall status = %s, want MATCH once the mismatch is context-only", withContext.OverallStatus)
	}
	if withContext.MismatchCount != 0 || withContext.MatchCount != 1 {
		t.Errorf("counts = %d mismatches / %d matches, want 0/1",
			withContext.MismatchCount, withContext.MatchCount)
	}
}

func TestCompareRecordsSkipFields(t *testing.T) {
	app := ApplicationRecord{ID: "COLA-2024-006", BrandName: "Harbor Light"}
	extracted := ExtractedRecord{BrandName: "Harbor Light"}

	result, err := CompareRecords(app, extracted, &Options{
		SkipFields: []FieldType{FieldGovernmentWarning, FieldNetContents},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Fields) != len(AllFields)-2 {
		t.Errorf("expected %d fields after skipping two, got %d", len(AllFields)-2, len(result.Fields))
	}
	for _, fc := range result.Fields {
		if fc.Field == FieldGovernmentWarning || fc.Field == FieldNetContents {
			t.Errorf("skipped field %s present in result", fc.Field)
		}
	}
}

func TestCompareRecordsExtractionConfidence(t *testing.T) {
	app := ApplicationRecord{ID: "COLA-2024-007", BrandName: "Cedar Ridge", ClassType: "Stout"}
	extracted := ExtractedRecord{
		BrandName: "Cedar Ridge",
		ClassType: "Pilsner",
		Confidence: map[FieldType]float64{
			FieldBrandName: 0.55,
			FieldClassType: 0.80,
		},
	}

	result, err := CompareRecords(app, extracted, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	brand := fieldByType(t, result, FieldBrandName)
	if brand.Status != StatusMatch || brand.Confidence != ConfidenceLow {
		t.Errorf("brand = %s/%s, want MATCH/LOW under shaky extraction", brand.Status, brand.Confidence)
	}

	class := fieldByType(t, result, FieldClassType)
	if class.Status != StatusMismatch || class.Confidence != ConfidenceLow {
		t.Errorf("class = %s/%s, want MISMATCH/LOW with extraction confidence 0.80", class.Status, class.Confidence)
	}

	ignored, err := CompareRecords(app, extracted, &Options{IgnoreConfidence: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	brand = fieldByType(t, ignored, FieldBrandName)
	if brand.Confidence != ConfidenceHigh {
		t.Errorf("brand confidence = %s, want HIGH when scores are ignored", brand.Confidence)
	}
}

func TestCompareRecordsValidation(t *testing.T) {
	valid := ApplicationRecord{ID: "COLA-2024-008"}

	tests := []struct {
		name string
		app  ApplicationRecord
		opts *Options
	}{
		{name: "missing identifier", app: ApplicationRecord{}},
		{name: "blank identifier", app: ApplicationRecord{ID: "   "}},
		{name: "unknown skip field", app: valid, opts: &Options{SkipFields: []FieldType{"vintage"}}},
		{name: "unknown context field", app: valid, opts: &Options{ContextFields: []FieldType{"vintage"}}},
		{name: "unknown threshold field", app: valid, opts: &Options{FuzzyThresholds: map[FieldType]float64{"vintage": 0.5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompareRecords(tt.app, ExtractedRecord{}, tt.opts)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected *ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestQuickCompare(t *testing.T) {
	app := ApplicationRecord{ID: "COLA-2024-009", BrandName: "North Pier"}
	extracted := ExtractedRecord{BrandName: "South Pier"}

	status, err := QuickCompare(app, extracted, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != OverallMismatch {
		t.Errorf("quick compare = %s, want MISMATCH", status)
	}
}

func TestFieldMatches(t *testing.T) {
	truthy := []MatchStatus{StatusMatch, StatusLikelyMatch, StatusContext}
	falsy := []MatchStatus{StatusMismatch, StatusMissing}

	for _, status := range truthy {
		if !FieldMatches(status) {
			t.Errorf("FieldMatches(%s) = false, want true", status)
		}
	}
	for _, status := range falsy {
		if FieldMatches(status) {
			t.Errorf("FieldMatches(%s) = true, want false", status)
		}
	}
}

func TestCompareBatch(t *testing.T) {
	applications := []ApplicationRecord{
		{ID: "A-1", BrandName: "First Brand"},
		{ID: "A-2", BrandName: "Second Brand"},
	}
	extracted := map[string]ExtractedRecord{
		"A-1": {BrandName: "First Brand"},
		// A-2 has no extraction at all.
	}

	results, err := CompareBatch(applications, extracted, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results["A-1"].OverallStatus != OverallMatch {
		t.Errorf("A-1 overall = %s, want MATCH", results["A-1"].OverallStatus)
	}
	if results["A-2"].OverallStatus != OverallNeedsReview {
		t.Errorf("A-2 overall = %s, want NEEDS_REVIEW when nothing was extracted", results["A-2"].OverallStatus)
	}
	if results["A-2"].MissingCount != 1 {
		t.Errorf("A-2 missing count = %d, want 1", results["A-2"].MissingCount)
	}
}

func TestCompareBatchPropagatesValidation(t *testing.T) {
	applications := []ApplicationRecord{{BrandName: "No Identifier"}}

	_, err := CompareBatch(applications, nil, nil)
	if err == nil {
		t.Fatal("expected error for record without identifier")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected *ValidationError, got %T: %v", err, err)
	}
}
