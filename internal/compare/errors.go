package compare

import "fmt"

// ValidationError reports caller misuse: a record with no identifier or an
// unknown field type in the options. Data-quality problems (empty OCR output,
// garbled numbers, absent fields) never surface as errors; they are modeled
// as MatchStatus values so a comparison run always completes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid comparison input (%s): %s", e.Field, e.Message)
}

var validFieldTypes = func() map[FieldType]bool {
	m := make(map[FieldType]bool, len(AllFields))
	for _, ft := range AllFields {
		m[ft] = true
	}
	return m
}()

// ParseFieldType converts a string to a FieldType, for flag and file parsing.
func ParseFieldType(s string) (FieldType, error) {
	ft := FieldType(s)
	if !validFieldTypes[ft] {
		return "", &ValidationError{Field: "fieldType", Message: fmt.Sprintf("unknown field type %q", s)}
	}
	return ft, nil
}

func validateFieldList(option string, fields []FieldType) error {
	for _, ft := range fields {
		if !validFieldTypes[ft] {
			return &ValidationError{Field: option, Message: fmt.Sprintf("unknown field type %q", ft)}
		}
	}
	return nil
}

func validateThresholds(thresholds map[FieldType]float64) error {
	for ft := range thresholds {
		if !validFieldTypes[ft] {
			return &ValidationError{Field: "fuzzyThresholds", Message: fmt.Sprintf("unknown field type %q", ft)}
		}
	}
	return nil
}
