package validator

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"bennypowers.dev/tokenlint/internal/collections"
	"bennypowers.dev/tokenlint/internal/rules"
)

// DefaultNumRuns is the number of sampling trials per category
const DefaultNumRuns = 100

// Options configures a Validator. Zero values select the defaults.
type Options struct {
	// NumRuns is the number of sampling trials per category
	NumRuns int

	// Seed fixes the sampling sequence. When nil a random seed is chosen
	// once per Validator and recorded in every report.
	Seed *uint64

	// Exhaustive checks every member of each category instead of sampling
	Exhaustive bool

	// StrictColors additionally requires hex and rgb() colors to parse
	StrictColors bool

	// RequiredColorSubcategories must each have at least one color-<sub> token
	RequiredColorSubcategories []string

	// SpacingScale, FontWeightScale and LineHeightScale are the ordered keys
	// of each progression, smallest first
	SpacingScale    []string
	FontWeightScale []string
	LineHeightScale []string

	// Categories replaces the sampled rule catalogue
	Categories []rules.Category
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		NumRuns:                    DefaultNumRuns,
		RequiredColorSubcategories: slices.Clone(rules.DefaultColorSubcategories),
		SpacingScale:               slices.Clone(rules.DefaultSpacingScale),
		FontWeightScale:            slices.Clone(rules.DefaultFontWeightScale),
		LineHeightScale:            slices.Clone(rules.DefaultLineHeightScale),
		Categories:                 rules.Default(),
	}
}

// Seed returns a pointer to v, for filling Options.Seed
func Seed(v uint64) *uint64 {
	return &v
}

// withDefaults fills unset fields and checks the result
func (o Options) withDefaults() (Options, error) {
	d := DefaultOptions()

	if o.NumRuns < 0 {
		return o, newOptionsError("numRuns", fmt.Sprintf("must be positive, got %d", o.NumRuns))
	}
	if o.NumRuns == 0 {
		o.NumRuns = d.NumRuns
	}
	if o.RequiredColorSubcategories == nil {
		o.RequiredColorSubcategories = d.RequiredColorSubcategories
	}
	if len(o.SpacingScale) == 0 {
		o.SpacingScale = d.SpacingScale
	}
	if len(o.FontWeightScale) == 0 {
		o.FontWeightScale = d.FontWeightScale
	}
	if len(o.LineHeightScale) == 0 {
		o.LineHeightScale = d.LineHeightScale
	}
	if len(o.Categories) == 0 {
		o.Categories = d.Categories
	}
	if o.StrictColors {
		o.Categories = rules.Strict(o.Categories)
	}
	if o.Seed == nil {
		o.Seed = Seed(rand.Uint64())
	}

	for _, scale := range []struct {
		field string
		keys  []string
	}{
		{"requiredColorSubcategories", o.RequiredColorSubcategories},
		{"spacingScale", o.SpacingScale},
		{"fontWeightScale", o.FontWeightScale},
		{"lineHeightScale", o.LineHeightScale},
	} {
		seen := collections.NewSet[string]()
		for _, k := range scale.keys {
			if k == "" {
				return o, newOptionsError(scale.field, "contains an empty key")
			}
			if !seen.AddNew(k) {
				return o, newOptionsError(scale.field, fmt.Sprintf("key %q repeats", k))
			}
		}
	}

	for _, c := range o.Categories {
		if c.Name == "" || c.Prefix == "" || c.Pattern == nil || c.Value == nil {
			return o, newOptionsError("categories", fmt.Sprintf("category %q is incomplete", c.Name))
		}
	}

	return o, nil
}
