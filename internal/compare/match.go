package compare

import (
	"regexp"
	"strings"
)

// Per-field matching policy. Fields in none of these sets fall through to
// plain exact comparison, where any remaining difference is a mismatch.
var (
	// exactMatchFields tolerate no difference beyond normalization.
	exactMatchFields = map[FieldType]bool{
		FieldGovernmentWarning: true,
	}

	// defaultFuzzyThresholds holds the similarity threshold per fuzzy field.
	// Set membership is fixed; callers may only override the threshold value.
	defaultFuzzyThresholds = map[FieldType]float64{
		FieldBrandName: 0.85,
		FieldClassType: 0.70,
	}

	// labelOnlyFields validate the label text itself against regulatory
	// requirements rather than against an application-submitted value.
	labelOnlyFields = map[FieldType]bool{
		FieldGovernmentWarning: true,
	}
)

// containmentSimilarity is the score reported when one normalized value
// contains the other.
const containmentSimilarity = 0.9

// Extraction confidence cutoffs used when deriving confidence levels.
const (
	lowConfidenceCutoff      = 0.70
	mismatchConfidenceCutoff = 0.85
)

// CanonicalGovernmentWarning is the federal health warning statement required
// on alcoholic beverage labels by 27 CFR part 16.
const CanonicalGovernmentWarning = "GOVERNMENT WARNING: (1) According to the Surgeon General, " +
	"women should not drink alcoholic beverages during pregnancy because of the risk of birth defects. " +
	"(2) Consumption of alcoholic beverages impairs your ability to drive a car or operate machinery, " +
	"and may cause health problems."

var emphasisRe = regexp.MustCompile(`[*_]+`)

// matchOutcome is the raw matcher verdict before confidence derivation.
type matchOutcome struct {
	status     MatchStatus
	similarity *float64
}

// matchField decides the relationship between one field's normalized
// application value and normalized extracted value. Rules apply in order:
// context override, absent extraction, label-only validation, absent
// application value, exact equality, then field-specific policy.
func matchField(ft FieldType, appNorm, extNorm string, contextOnly bool, overrides map[FieldType]float64) matchOutcome {
	if contextOnly {
		return matchOutcome{status: StatusContext}
	}

	if extNorm == "" {
		// A field absent from both sources is informational, not a
		// reviewable gap.
		if appNorm == "" {
			return matchOutcome{status: StatusContext}
		}
		return matchOutcome{status: StatusMissing}
	}

	if appNorm == "" {
		if labelOnlyFields[ft] {
			return matchLabelOnly(ft, extNorm)
		}
		return matchOutcome{status: StatusMissing}
	}

	if appNorm == extNorm {
		return matchOutcome{status: StatusMatch}
	}

	if exactMatchFields[ft] {
		return matchOutcome{status: StatusMismatch}
	}

	if threshold, ok := fuzzyThreshold(ft, overrides); ok {
		if strings.Contains(appNorm, extNorm) || strings.Contains(extNorm, appNorm) {
			score := containmentSimilarity
			return matchOutcome{status: StatusLikelyMatch, similarity: &score}
		}

		similarity := Similarity(appNorm, extNorm)
		if similarity >= threshold {
			return matchOutcome{status: StatusLikelyMatch, similarity: &similarity}
		}
		return matchOutcome{status: StatusMismatch, similarity: &similarity}
	}

	return matchOutcome{status: StatusMismatch}
}

// matchLabelOnly validates a label-only field when the application carries no
// value for it. The government warning is checked against the canonical
// federal text; other label-only fields pass unconditionally.
func matchLabelOnly(ft FieldType, extNorm string) matchOutcome {
	if ft == FieldGovernmentWarning {
		if canonicalizeWarning(extNorm) == canonicalizeWarning(CanonicalGovernmentWarning) {
			return matchOutcome{status: StatusMatch}
		}
		return matchOutcome{status: StatusMismatch}
	}
	return matchOutcome{status: StatusMatch}
}

// canonicalizeWarning reduces a government warning statement to a canonical
// uppercase form: markdown emphasis stripped, whitespace collapsed, and the
// GOVERNMENT WARNING: prefix guaranteed.
func canonicalizeWarning(text string) string {
	text = emphasisRe.ReplaceAllString(text, "")
	text = strings.ToUpper(strings.TrimSpace(text))
	text = strings.Join(strings.Fields(text), " ")
	if !strings.HasPrefix(text, "GOVERNMENT WARNING:") {
		text = "GOVERNMENT WARNING: " + text
	}
	return text
}

// fuzzyThreshold reports the effective threshold for a field in the
// fuzzy-match set. Overrides never add fields to the set.
func fuzzyThreshold(ft FieldType, overrides map[FieldType]float64) (float64, bool) {
	base, ok := defaultFuzzyThresholds[ft]
	if !ok {
		return 0, false
	}
	if overrides != nil {
		if t, ok := overrides[ft]; ok {
			return t, true
		}
	}
	return base, true
}

// determineConfidence derives the review confidence for a field outcome. A
// low extraction confidence drags everything except CONTEXT down to LOW.
func determineConfidence(status MatchStatus, extractionConfidence *float64) ConfidenceLevel {
	if status == StatusContext {
		return ConfidenceLow
	}

	if extractionConfidence != nil && *extractionConfidence < lowConfidenceCutoff {
		return ConfidenceLow
	}

	switch status {
	case StatusLikelyMatch:
		return ConfidenceMedium
	case StatusMissing:
		return ConfidenceLow
	case StatusMismatch:
		if extractionConfidence != nil && *extractionConfidence < mismatchConfidenceCutoff {
			return ConfidenceLow
		}
		return ConfidenceMedium
	}

	return ConfidenceHigh
}
