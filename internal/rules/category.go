// Package rules holds the token catalogue: per-category naming patterns,
// value predicates and the ordered scales checked for progression.
package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Category is a group of tokens sharing a name prefix, naming rule and value rule
type Category struct {
	// Name identifies the category in reports, e.g. "space"
	Name string

	// Prefix selects member tokens, e.g. "space-"
	Prefix string

	// Pattern must match the full name of every member
	Pattern *regexp.Regexp

	// Value must accept the raw value of every member
	Value Predicate

	// Expect describes the accepted values for failure messages
	Expect string
}

// NewCategory builds a category whose names are prefix followed by a suffix
// matching suffixPattern
func NewCategory(name, prefix, suffixPattern string, value Predicate, expect string) Category {
	return Category{
		Name:    name,
		Prefix:  prefix,
		Pattern: regexp.MustCompile(fmt.Sprintf(`^%s(%s)$`, regexp.QuoteMeta(prefix), suffixPattern)),
		Value:   value,
		Expect:  expect,
	}
}

// Owns reports whether a token name falls in this category
func (c Category) Owns(name string) bool {
	return strings.HasPrefix(name, c.Prefix)
}

// MatchName reports whether name satisfies the naming pattern
func (c Category) MatchName(name string) bool {
	return c.Pattern.MatchString(name)
}

// MatchValue reports whether value satisfies the value predicate
func (c Category) MatchValue(value string) bool {
	return c.Value(value)
}

// Default returns the sampled categories of the site's design system
func Default() []Category {
	return []Category{
		NewCategory("color", "color-", `(bg|text|accent|success|warning|border)(-\w+)?`, IsColor,
			"hex (#RGB or #RRGGBB), rgb()/rgba(), var(--...), or transparent/inherit/initial/unset"),
		NewCategory("space", "space-", `2xs|xs|sm|md|lg|xl|2xl|3xl`, IsSpacing,
			"a number with rem, px, em, %, vw or vh"),
		NewCategory("font-size", "font-size-", `xs|sm|base|lg|xl|2xl|3xl|4xl|5xl`, IsFontSize,
			"a number with rem, px or em, or clamp()"),
		NewCategory("duration", "duration-", `fast|normal|slow`, IsDuration,
			"whole milliseconds, e.g. 200ms"),
		NewCategory("easing", "easing-", `smooth|bounce`, IsEasing,
			"ease, ease-in, ease-out, ease-in-out, linear, or cubic-bezier()"),
	}
}

// Strict returns cats with the color category's predicate replaced by IsStrictColor
func Strict(cats []Category) []Category {
	out := make([]Category, len(cats))
	copy(out, cats)
	for i := range out {
		if out[i].Name == "color" {
			out[i].Value = IsStrictColor
			out[i].Expect += " that parses as a real color"
		}
	}
	return out
}
