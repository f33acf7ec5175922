// Package compare decides whether the field values extracted from a beverage
// label image agree with the values submitted on the regulatory application.
//
// The engine is a pure, in-process pipeline: per-field normalization, then
// per-field matching policy, then aggregation into one overall verdict. It
// performs no I/O and keeps no state between calls.
package compare

import "time"

// FieldType identifies one of the eight label attributes compared between an
// application and its label images. The set is fixed; adding a field means
// updating the normalizer dispatch, the matcher policy tables, and AllFields
// together.
type FieldType string

const (
	FieldBrandName         FieldType = "brandName"
	FieldClassType         FieldType = "classType"
	FieldAlcoholContent    FieldType = "alcoholContent"
	FieldNetContents       FieldType = "netContents"
	FieldGovernmentWarning FieldType = "governmentWarning"
	FieldBottlerName       FieldType = "bottlerName"
	FieldBottlerAddress    FieldType = "bottlerAddress"
	FieldCountryOfOrigin   FieldType = "countryOfOrigin"
)

// AllFields is the fixed comparison order used by the aggregator.
var AllFields = []FieldType{
	FieldBrandName,
	FieldClassType,
	FieldAlcoholContent,
	FieldNetContents,
	FieldGovernmentWarning,
	FieldBottlerName,
	FieldBottlerAddress,
	FieldCountryOfOrigin,
}

// MatchStatus classifies the relationship between one field's application
// value and its extracted value.
type MatchStatus string

const (
	StatusMatch       MatchStatus = "MATCH"
	StatusLikelyMatch MatchStatus = "LIKELY_MATCH"
	StatusMismatch    MatchStatus = "MISMATCH"
	StatusMissing     MatchStatus = "MISSING"
	StatusContext     MatchStatus = "CONTEXT"
)

// ConfidenceLevel indicates how much weight a reviewer should give a field
// outcome.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

// OverallStatus is the aggregate verdict for one record pair.
type OverallStatus string

const (
	OverallMatch       OverallStatus = "MATCH"
	OverallNeedsReview OverallStatus = "NEEDS_REVIEW"
	OverallMismatch    OverallStatus = "MISMATCH"
)

// ApplicationRecord holds the field values submitted on the application form.
// Empty strings mean the applicant did not supply the field.
type ApplicationRecord struct {
	ID                string `json:"id" yaml:"id"`
	BrandName         string `json:"brandName,omitempty" yaml:"brandname,omitempty"`
	ClassType         string `json:"classType,omitempty" yaml:"classtype,omitempty"`
	AlcoholContent    string `json:"alcoholContent,omitempty" yaml:"alcoholcontent,omitempty"`
	NetContents       string `json:"netContents,omitempty" yaml:"netcontents,omitempty"`
	GovernmentWarning string `json:"governmentWarning,omitempty" yaml:"governmentwarning,omitempty"`
	BottlerName       string `json:"bottlerName,omitempty" yaml:"bottlername,omitempty"`
	BottlerAddress    string `json:"bottlerAddress,omitempty" yaml:"bottleraddress,omitempty"`
	CountryOfOrigin   string `json:"countryOfOrigin,omitempty" yaml:"countryoforigin,omitempty"`

	// Classification strings from the application form.
	ProductType string `json:"productType,omitempty" yaml:"producttype,omitempty"`
	SourceType  string `json:"sourceType,omitempty" yaml:"sourcetype,omitempty"` // e.g. "Imported", "Domestic"
}

// FieldValue returns the submitted value for a field type.
func (r *ApplicationRecord) FieldValue(ft FieldType) string {
	switch ft {
	case FieldBrandName:
		return r.BrandName
	case FieldClassType:
		return r.ClassType
	case FieldAlcoholContent:
		return r.AlcoholContent
	case FieldNetContents:
		return r.NetContents
	case FieldGovernmentWarning:
		return r.GovernmentWarning
	case FieldBottlerName:
		return r.BottlerName
	case FieldBottlerAddress:
		return r.BottlerAddress
	case FieldCountryOfOrigin:
		return r.CountryOfOrigin
	}
	return ""
}

// ExtractedRecord holds the field values the OCR/LLM pipeline read off the
// label images. Empty strings mean the field was not detected. Confidence
// carries the upstream extraction confidence per field, in [0,1], already
// merged across images by the caller.
type ExtractedRecord struct {
	BrandName         string `json:"brandName,omitempty" yaml:"brandname,omitempty"`
	ClassType         string `json:"classType,omitempty" yaml:"classtype,omitempty"`
	AlcoholContent    string `json:"alcoholContent,omitempty" yaml:"alcoholcontent,omitempty"`
	NetContents       string `json:"netContents,omitempty" yaml:"netcontents,omitempty"`
	GovernmentWarning string `json:"governmentWarning,omitempty" yaml:"governmentwarning,omitempty"`
	BottlerName       string `json:"bottlerName,omitempty" yaml:"bottlername,omitempty"`
	BottlerAddress    string `json:"bottlerAddress,omitempty" yaml:"bottleraddress,omitempty"`
	CountryOfOrigin   string `json:"countryOfOrigin,omitempty" yaml:"countryoforigin,omitempty"`

	Confidence map[FieldType]float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// FieldValue returns the extracted value for a field type.
func (r *ExtractedRecord) FieldValue(ft FieldType) string {
	switch ft {
	case FieldBrandName:
		return r.BrandName
	case FieldClassType:
		return r.ClassType
	case FieldAlcoholContent:
		return r.AlcoholContent
	case FieldNetContents:
		return r.NetContents
	case FieldGovernmentWarning:
		return r.GovernmentWarning
	case FieldBottlerName:
		return r.BottlerName
	case FieldBottlerAddress:
		return r.BottlerAddress
	case FieldCountryOfOrigin:
		return r.CountryOfOrigin
	}
	return ""
}

// FieldComparison is the per-field outcome of one comparison run.
// SimilarityScore is non-nil only when the fuzzy match path ran.
type FieldComparison struct {
	Field                 FieldType       `json:"field" yaml:"field"`
	ApplicationValue      string          `json:"applicationValue,omitempty" yaml:"applicationvalue,omitempty"`
	ExtractedValue        string          `json:"extractedValue,omitempty" yaml:"extractedvalue,omitempty"`
	NormalizedApplication string          `json:"normalizedApplication,omitempty" yaml:"normalizedapplication,omitempty"`
	NormalizedExtracted   string          `json:"normalizedExtracted,omitempty" yaml:"normalizedextracted,omitempty"`
	Status                MatchStatus     `json:"status" yaml:"status"`
	Confidence            ConfidenceLevel `json:"confidence" yaml:"confidence"`
	SimilarityScore       *float64        `json:"similarityScore,omitempty" yaml:"similarityscore,omitempty"`
}

// ComparisonResult is the full outcome of comparing one application record
// against one extracted record. Counts cover non-CONTEXT fields only.
type ComparisonResult struct {
	RecordID         string            `json:"recordId" yaml:"recordid"`
	Fields           []FieldComparison `json:"fields" yaml:"fields"`
	OverallStatus    OverallStatus     `json:"overallStatus" yaml:"overallstatus"`
	MatchCount       int               `json:"matchCount" yaml:"matchcount"`
	MismatchCount    int               `json:"mismatchCount" yaml:"mismatchcount"`
	MissingCount     int               `json:"missingCount" yaml:"missingcount"`
	LikelyMatchCount int               `json:"likelyMatchCount" yaml:"likelymatchcount"`
	ComparedAt       time.Time         `json:"comparedAt" yaml:"comparedat"`
}

// Options adjusts a comparison run. The zero value compares all eight fields
// with the default thresholds and honors supplied confidence scores.
type Options struct {
	// FuzzyThresholds overrides the default similarity threshold for fields
	// in the fuzzy-match set.
	FuzzyThresholds map[FieldType]float64

	// SkipFields excludes fields from the comparison entirely; they do not
	// appear in the result.
	SkipFields []FieldType

	// ContextFields forces fields to CONTEXT status regardless of values.
	ContextFields []FieldType

	// IgnoreConfidence disables use of the extraction confidence scores when
	// deriving confidence levels.
	IgnoreConfidence bool
}
