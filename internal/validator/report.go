package validator

import "fmt"

// FailureRule names the rule a failure violated
type FailureRule string

const (
	RuleNaming             FailureRule = "naming pattern mismatch"
	RuleValue              FailureRule = "value predicate failed"
	RuleProgression        FailureRule = "progression violated"
	RuleBound              FailureRule = "bound violated"
	RuleMissingSubcategory FailureRule = "required sub-category missing"
	RuleKeyAbsent          FailureRule = "progression key absent"
	RuleNotNumeric         FailureRule = "value not numeric for progression comparison"
)

// Failure identifies one violated (category, token, rule) triple
type Failure struct {
	Category string      `json:"category"`
	Token    string      `json:"token"`
	Rule     FailureRule `json:"rule"`
	Detail   string      `json:"detail"`
	Values   []string    `json:"values,omitempty"`
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %s: %s: %s", f.Category, f.Token, f.Rule, f.Detail)
}

// Skip records a sampled check that passed vacuously
type Skip struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// Report is the outcome of one validation run
type Report struct {
	OK       bool      `json:"ok"`
	Failures []Failure `json:"failures"`
	Skipped  []Skip    `json:"skipped,omitempty"`

	// Seed reproduces the sampling of this run
	Seed uint64 `json:"seed"`

	// Checks counts the individual assertions made
	Checks int `json:"checks"`
}

// Failed returns the failures for category that violated rule. An empty
// category matches every category.
func (r *Report) Failed(category string, rule FailureRule) []Failure {
	var out []Failure
	for _, f := range r.Failures {
		if (category == "" || f.Category == category) && f.Rule == rule {
			out = append(out, f)
		}
	}
	return out
}

// ForToken returns the failures attributed to a token name
func (r *Report) ForToken(name string) []Failure {
	var out []Failure
	for _, f := range r.Failures {
		if f.Token == name {
			out = append(out, f)
		}
	}
	return out
}
