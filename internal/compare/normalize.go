package compare

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// unitToMilliliters converts recognized net-contents units to milliliters.
// Long-form unit names map identically to their abbreviations.
var unitToMilliliters = map[string]float64{
	"ml":           1,
	"milliliter":   1,
	"milliliters":  1,
	"millilitre":   1,
	"millilitres":  1,
	"cl":           10,
	"centiliter":   10,
	"centiliters":  10,
	"centilitre":   10,
	"centilitres":  10,
	"l":            1000,
	"liter":        1000,
	"liters":       1000,
	"litre":        1000,
	"litres":       1000,
	"fl oz":        29.5735,
	"floz":         29.5735,
	"oz":           29.5735,
	"fluid ounce":  29.5735,
	"fluid ounces": 29.5735,
	"ounce":        29.5735,
	"ounces":       29.5735,
	"pt":           473.176,
	"pint":         473.176,
	"pints":        473.176,
	"qt":           946.353,
	"quart":        946.353,
	"quarts":       946.353,
	"gal":          3785.41,
	"gallon":       3785.41,
	"gallons":      3785.41,
}

// addressAbbreviations maps spelled-out street and direction words to the
// postal abbreviations used on labels. Matched per whole word after
// lowercasing, so matching is case-insensitive and bounded at word breaks.
var addressAbbreviations = map[string]string{
	"street":    "st",
	"avenue":    "ave",
	"boulevard": "blvd",
	"drive":     "dr",
	"road":      "rd",
	"lane":      "ln",
	"court":     "ct",
	"place":     "pl",
	"circle":    "cir",
	"highway":   "hwy",
	"parkway":   "pkwy",
	"suite":     "ste",
	"apartment": "apt",
	"building":  "bldg",
	"floor":     "fl",
	"north":     "n",
	"south":     "s",
	"east":      "e",
	"west":      "w",
	"northeast": "ne",
	"northwest": "nw",
	"southeast": "se",
	"southwest": "sw",
}

var (
	apostropheRe = regexp.MustCompile("['’`]")
	proofRe      = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*proof`)
	percentRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	numberRe     = regexp.MustCompile(`\d+(?:\.\d+)?`)
	volumeRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([a-zA-Z. ]*)`)
)

// Normalize canonicalizes a raw field value so that superficial formatting
// differences do not read as mismatches. Blank input yields the empty string
// for every field type.
func Normalize(ft FieldType, raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	switch ft {
	case FieldBrandName:
		return normalizeBrandName(raw)
	case FieldClassType:
		return strings.ToLower(strings.TrimSpace(raw))
	case FieldAlcoholContent:
		return normalizeAlcoholContent(raw)
	case FieldNetContents:
		return normalizeNetContents(raw)
	case FieldGovernmentWarning:
		// Exact-match field: preserve case and content verbatim.
		return strings.TrimSpace(raw)
	case FieldBottlerName:
		return collapseWhitespace(strings.ToLower(raw))
	case FieldBottlerAddress:
		return normalizeBottlerAddress(raw)
	case FieldCountryOfOrigin:
		return strings.ToLower(strings.TrimSpace(raw))
	}

	return strings.TrimSpace(raw)
}

func normalizeBrandName(raw string) string {
	text := strings.ToLower(raw)
	text = apostropheRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "-", " ")
	return collapseWhitespace(text)
}

// normalizeAlcoholContent reduces alcohol content text to a bare number.
// "90 Proof" converts to its percentage equivalent ("45"); "45% Alc./Vol."
// reads the percentage; anything else falls back to the first number found.
func normalizeAlcoholContent(raw string) string {
	text := strings.ReplaceAll(raw, ",", ".")

	if m := proofRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return formatNumber(v / 2)
		}
	}

	if m := percentRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return formatNumber(v)
		}
	}

	if m := numberRe.FindString(text); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return formatNumber(v)
		}
	}

	return ""
}

// normalizeNetContents converts "750 mL", "0.75 L", "75cl" and friends to a
// canonical milliliter count. An unrecognized unit leaves the raw number,
// rounded.
func normalizeNetContents(raw string) string {
	m := volumeRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return ""
	}

	unit := strings.ToLower(m[2])
	unit = strings.ReplaceAll(unit, ".", "")
	unit = collapseWhitespace(unit)

	if factor, ok := unitToMilliliters[unit]; ok {
		return strconv.Itoa(int(math.Round(value * factor)))
	}

	return strconv.Itoa(int(math.Round(value)))
}

func normalizeBottlerAddress(raw string) string {
	text := strings.ToLower(raw)
	text = strings.ReplaceAll(text, ".", "")
	text = strings.ReplaceAll(text, ",", "")

	words := strings.Fields(text)
	for i, word := range words {
		if abbr, ok := addressAbbreviations[word]; ok {
			words[i] = abbr
		}
	}

	return strings.Join(words, " ")
}

// collapseWhitespace trims and squeezes runs of whitespace to single spaces.
func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// formatNumber renders a float without trailing zeros ("45", not "45.0").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
