package rules_test

import (
	"math"
	"testing"

	"bennypowers.dev/tokenlint/internal/rules"
	"github.com/stretchr/testify/assert"
)

func TestLeadingFloat(t *testing.T) {
	cases := map[string]float64{
		"1.5rem": 1.5,
		"0.25":   0.25,
		".5em":   0.5,
		"-2px":   -2,
		"2":      2,
		" 1.375": 1.375,
		"1e1px":  10,
	}
	for in, want := range cases {
		got, ok := rules.LeadingFloat(in)
		assert.True(t, ok, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}

	for _, in := range []string{"", "rem", "auto", "clamp(1rem, 2vw, 2rem)", "var(--x)"} {
		_, ok := rules.LeadingFloat(in)
		assert.False(t, ok, in)
	}
}

func TestLeadingInt(t *testing.T) {
	got, ok := rules.LeadingInt("600")
	assert.True(t, ok)
	assert.Equal(t, 600.0, got)

	got, ok = rules.LeadingInt("6.5")
	assert.True(t, ok)
	assert.Equal(t, 6.0, got)

	_, ok = rules.LeadingInt("bold")
	assert.False(t, ok)
}

func TestLeadingNumberOutOfRange(t *testing.T) {
	n, ok := rules.LeadingInt("99999999999999999999")
	assert.True(t, ok)
	assert.Equal(t, float64(math.MaxInt64), n)

	n, ok = rules.LeadingInt("-99999999999999999999")
	assert.True(t, ok)
	assert.Equal(t, float64(math.MinInt64), n)

	f, ok := rules.LeadingFloat("1e400")
	assert.True(t, ok)
	assert.True(t, math.IsInf(f, 1))
}

func TestDefaultProgressions(t *testing.T) {
	progs := rules.DefaultProgressions()
	assert.Len(t, progs, 3)

	byCategory := map[string]rules.Progression{}
	for _, p := range progs {
		byCategory[p.Category] = p
	}

	assert.Equal(t, rules.DefaultSpacingScale, byCategory["space"].Keys)
	assert.Equal(t, "space-2xs", byCategory["space"].TokenName("2xs"))
	assert.Nil(t, byCategory["font-weight"].Bounds)

	lh := byCategory["line-height"]
	if assert.NotNil(t, lh.Bounds) {
		assert.True(t, lh.Bounds.Contains(1.0))
		assert.True(t, lh.Bounds.Contains(2.0))
		assert.False(t, lh.Bounds.Contains(2.5))
		assert.False(t, lh.Bounds.Contains(0.9))
	}
}
