package rules

import (
	"regexp"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Predicate reports whether a raw token value is acceptable
type Predicate func(value string) bool

var (
	hexColorRegexp  = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	rgbColorRegexp  = regexp.MustCompile(`^rgba?\([^)]+\)$`)
	varRefRegexp    = regexp.MustCompile(`^var\(--[^)]+\)$`)
	spacingRegexp   = regexp.MustCompile(`^-?\d*\.?\d+(rem|px|em|%|vw|vh)$`)
	fontSizeRegexp  = regexp.MustCompile(`^(\d*\.?\d+(rem|px|em)|clamp\([^)]+\))$`)
	durationRegexp  = regexp.MustCompile(`^\d+ms$`)
	easingRegexp    = regexp.MustCompile(`^(ease|ease-in|ease-out|ease-in-out|linear|cubic-bezier\([^)]+\))$`)
	colorKeywordSet = map[string]bool{
		"transparent": true,
		"inherit":     true,
		"initial":     true,
		"unset":       true,
	}
)

// IsColor accepts #RGB and #RRGGBB hex, rgb()/rgba(), var(--...) references
// and the keywords transparent, inherit, initial and unset in any case.
func IsColor(value string) bool {
	switch {
	case hexColorRegexp.MatchString(value),
		rgbColorRegexp.MatchString(value),
		varRefRegexp.MatchString(value):
		return true
	}
	return colorKeywordSet[strings.ToLower(value)]
}

// IsStrictColor is IsColor, additionally requiring hex and rgb()/rgba()
// values to describe a color a browser would accept.
func IsStrictColor(value string) bool {
	if !IsColor(value) {
		return false
	}
	if hexColorRegexp.MatchString(value) || rgbColorRegexp.MatchString(value) {
		_, err := csscolorparser.Parse(value)
		return err == nil
	}
	return true
}

// NormalizeColor returns the #rrggbb(aa) form of a parseable color value
func NormalizeColor(value string) (string, bool) {
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return "", false
	}
	return c.HexString(), true
}

// IsSpacing accepts a signed decimal followed by rem, px, em, %, vw or vh
func IsSpacing(value string) bool {
	return spacingRegexp.MatchString(value)
}

// IsFontSize accepts a decimal followed by rem, px or em, or a clamp() expression
func IsFontSize(value string) bool {
	return fontSizeRegexp.MatchString(value)
}

// IsDuration accepts a whole number of milliseconds, e.g. "200ms"
func IsDuration(value string) bool {
	return durationRegexp.MatchString(value)
}

// IsEasing accepts the ease keywords, linear, or a cubic-bezier() curve
func IsEasing(value string) bool {
	return easingRegexp.MatchString(value)
}
