package rules

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Default key sequences for the ordered scales
var (
	DefaultColorSubcategories = []string{"bg", "text", "accent", "success", "warning", "border"}
	DefaultSpacingScale       = []string{"2xs", "xs", "sm", "md", "lg", "xl", "2xl", "3xl"}
	DefaultFontWeightScale    = []string{"normal", "medium", "semibold", "bold", "extrabold", "black"}
	DefaultLineHeightScale    = []string{"tight", "snug", "normal", "relaxed", "loose"}
)

// NumberParser reads the numeric interpretation of a raw value
type NumberParser func(value string) (float64, bool)

// Bounds is an inclusive numeric range
type Bounds struct {
	Min, Max float64
}

// Contains reports whether v lies within the bounds
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Progression requires the values at Prefix+Keys[i] to strictly increase
type Progression struct {
	// Category names the scale in reports, e.g. "font-weight"
	Category string

	// Prefix is prepended to each key to form the token name
	Prefix string

	// Keys is the ordered step sequence, smallest first
	Keys []string

	// Parse interprets each step's raw value
	Parse NumberParser

	// Bounds, when set, must contain every step
	Bounds *Bounds
}

// TokenName returns the token name for step key
func (p Progression) TokenName(key string) string {
	return p.Prefix + key
}

// Progressions builds the spacing, font-weight and line-height progressions
// over the given key sequences. Line heights are bounded to [1.0, 2.0].
func Progressions(spacing, fontWeight, lineHeight []string) []Progression {
	return []Progression{
		{Category: "space", Prefix: "space-", Keys: spacing, Parse: LeadingFloat},
		{Category: "font-weight", Prefix: "font-weight-", Keys: fontWeight, Parse: LeadingInt},
		{Category: "line-height", Prefix: "line-height-", Keys: lineHeight, Parse: LeadingFloat,
			Bounds: &Bounds{Min: 1.0, Max: 2.0}},
	}
}

// DefaultProgressions returns Progressions over the default scales
func DefaultProgressions() []Progression {
	return Progressions(DefaultSpacingScale, DefaultFontWeightScale, DefaultLineHeightScale)
}

var (
	leadingFloatRegexp = regexp.MustCompile(`^\s*[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)
	leadingIntRegexp   = regexp.MustCompile(`^\s*[-+]?\d+`)
)

// LeadingFloat reads the decimal number a value starts with, so "1.5rem"
// reads as 1.5. Values that do not start with a number are not numeric;
// magnitudes beyond float64 read as ±Inf.
func LeadingFloat(value string) (float64, bool) {
	m := leadingFloatRegexp.FindString(value)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// LeadingInt reads the integer a value starts with, so "600" reads as 600
// and "6.5" as 6. Integers beyond int64 are capped at its bounds.
func LeadingInt(value string) (float64, bool) {
	m := leadingIntRegexp.FindString(value)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(m), 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return float64(n), true
}
