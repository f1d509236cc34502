// Package validator checks a token set against the rule catalogue: sampled
// naming and value checks per category, required color sub-categories, and
// the ordered spacing, font-weight and line-height scales.
package validator

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"bennypowers.dev/tokenlint/internal/collections"
	"bennypowers.dev/tokenlint/internal/log"
	"bennypowers.dev/tokenlint/internal/rules"
	"bennypowers.dev/tokenlint/internal/tokens"
)

const colorPrefix = "color-"

// Validator applies a fixed catalogue to token sets. It holds no state
// between runs; the same set and seed always yield the same report.
type Validator struct {
	opts         Options
	progressions []rules.Progression
}

// New checks opts, fills defaults and returns a Validator
func New(opts Options) (*Validator, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Validator{
		opts:         o,
		progressions: rules.Progressions(o.SpacingScale, o.FontWeightScale, o.LineHeightScale),
	}, nil
}

// Validate runs a single check of set with opts
func Validate(set *tokens.Set, opts Options) (*Report, error) {
	v, err := New(opts)
	if err != nil {
		return nil, err
	}
	return v.Validate(set), nil
}

// Options returns the effective options, defaults included
func (v *Validator) Options() Options {
	return v.opts
}

// Validate runs every check against set. A nil set is treated as empty.
func (v *Validator) Validate(set *tokens.Set) *Report {
	seed := *v.opts.Seed
	run := &run{
		set:    set,
		report: &Report{Seed: seed, Failures: []Failure{}},
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seen:   collections.NewSet[string](),
	}

	for _, c := range v.opts.Categories {
		run.sampleCategory(c, v.opts.NumRuns, v.opts.Exhaustive)
	}
	run.checkColorSubcategories(v.opts.RequiredColorSubcategories)
	for _, p := range v.progressions {
		run.checkProgression(p)
	}

	run.report.OK = len(run.report.Failures) == 0
	log.Info("Validated %d tokens: %d checks, %d failures (seed %d)",
		set.Len(), run.report.Checks, len(run.report.Failures), seed)
	return run.report
}

// run carries the state of one Validate call
type run struct {
	set    *tokens.Set
	report *Report
	rng    *rand.Rand
	seen   collections.Set[string]
}

// fail records f once per (category, token, rule)
func (r *run) fail(f Failure) {
	key := f.Category + "\x00" + f.Token + "\x00" + string(f.Rule)
	if !r.seen.AddNew(key) {
		return
	}
	log.Debug("Check failed: %s", f)
	r.report.Failures = append(r.report.Failures, f)
}

// sampleCategory draws trials uniformly from the category's members and
// checks each drawn token's name and value. A category without members
// passes vacuously and is recorded as skipped.
func (r *run) sampleCategory(c rules.Category, trials int, exhaustive bool) {
	var members []string
	for _, name := range r.set.Names() {
		if c.Owns(name) {
			members = append(members, name)
		}
	}

	if len(members) == 0 {
		log.Debug("Category %s has no tokens, skipping sampled checks", c.Name)
		r.report.Skipped = append(r.report.Skipped, Skip{
			Category: c.Name,
			Reason:   fmt.Sprintf("no tokens with prefix %q", c.Prefix),
		})
		return
	}

	if exhaustive {
		for _, name := range members {
			r.checkMember(c, name)
		}
		return
	}

	for range trials {
		r.checkMember(c, members[r.rng.IntN(len(members))])
	}
}

func (r *run) checkMember(c rules.Category, name string) {
	value, _ := r.set.Value(name)

	r.report.Checks += 2
	if !c.MatchName(name) {
		r.fail(Failure{
			Category: c.Name,
			Token:    name,
			Rule:     RuleNaming,
			Detail:   fmt.Sprintf("name does not match %s", c.Pattern),
			Values:   []string{value},
		})
	}
	if !c.MatchValue(value) {
		r.fail(Failure{
			Category: c.Name,
			Token:    name,
			Rule:     RuleValue,
			Detail:   fmt.Sprintf("value %q is not %s", value, c.Expect),
			Values:   []string{value},
		})
	}
}

// checkColorSubcategories requires a color-<sub> token for every sub
func (r *run) checkColorSubcategories(required []string) {
	for _, sub := range required {
		r.report.Checks++
		prefix := colorPrefix + sub
		if len(r.set.WithPrefix(prefix)) > 0 {
			continue
		}
		r.fail(Failure{
			Category: "color",
			Token:    prefix,
			Rule:     RuleMissingSubcategory,
			Detail:   fmt.Sprintf("no token named %s or %s-*", prefix, prefix),
		})
	}
}

// step is one resolved entry of a progression
type step struct {
	name    string
	raw     string
	value   float64
	numeric bool
}

// checkProgression requires each step to be present, numeric, within
// bounds, and strictly greater than the numeric step before it
func (r *run) checkProgression(p rules.Progression) {
	steps := make([]step, 0, len(p.Keys))
	for _, key := range p.Keys {
		name := p.TokenName(key)
		raw, ok := r.set.Value(name)
		r.report.Checks++
		if !ok {
			r.fail(Failure{
				Category: p.Category,
				Token:    name,
				Rule:     RuleKeyAbsent,
				Detail:   fmt.Sprintf("scale step %q is not defined", key),
			})
			steps = append(steps, step{name: name})
			continue
		}

		n, numeric := p.Parse(raw)
		if !numeric {
			r.fail(Failure{
				Category: p.Category,
				Token:    name,
				Rule:     RuleNotNumeric,
				Detail:   fmt.Sprintf("value %q has no leading number", raw),
				Values:   []string{raw},
			})
		}
		steps = append(steps, step{name: name, raw: raw, value: n, numeric: numeric})

		if numeric && p.Bounds != nil {
			r.report.Checks++
			if !p.Bounds.Contains(n) {
				r.fail(Failure{
					Category: p.Category,
					Token:    name,
					Rule:     RuleBound,
					Detail:   fmt.Sprintf("%s is outside [%s, %s]", raw, formatFloat(p.Bounds.Min), formatFloat(p.Bounds.Max)),
					Values:   []string{raw},
				})
			}
		}
	}

	// each numeric step is compared with the nearest numeric step before it,
	// so an absent or unreadable step does not hide a decrease around it
	var prev *step
	for i := range steps {
		cur := &steps[i]
		if !cur.numeric {
			continue
		}
		if prev == nil {
			prev = cur
			continue
		}
		last := prev
		prev = cur
		r.report.Checks++
		if cur.value > last.value {
			continue
		}
		r.fail(Failure{
			Category: p.Category,
			Token:    cur.name,
			Rule:     RuleProgression,
			Detail:   fmt.Sprintf("%s (%s) must be greater than %s (%s)", cur.name, cur.raw, last.name, last.raw),
			Values:   []string{last.raw, cur.raw},
		})
	}
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%.3f", f)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
