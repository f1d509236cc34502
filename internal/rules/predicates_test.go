package rules_test

import (
	"testing"

	"bennypowers.dev/tokenlint/internal/rules"
	"github.com/stretchr/testify/assert"
)

func TestIsColor(t *testing.T) {
	valid := []string{
		"#fff", "#FFF", "#0a0a0a", "#81A4F8",
		"rgb(0,0,0)", "rgba(0,0,0,0.5)", "rgba(129, 140, 248, 0.35)",
		"var(--color-accent-primary)",
		"transparent", "INHERIT", "Initial", "unset",
	}
	for _, v := range valid {
		assert.True(t, rules.IsColor(v), "%q should be a color", v)
	}

	invalid := []string{
		"", "#ff", "#ffff", "#fffffff", "#ggg",
		"rgb(0,0,0", "rgb()", "hsl(0, 0%, 0%)",
		"var(color)", "red", "currentColor",
	}
	for _, v := range invalid {
		assert.False(t, rules.IsColor(v), "%q should not be a color", v)
	}
}

func TestIsStrictColor(t *testing.T) {
	assert.True(t, rules.IsStrictColor("rgba(0,0,0,0.5)"))
	assert.True(t, rules.IsStrictColor("#0a0a0a"))
	assert.True(t, rules.IsStrictColor("var(--color-bg-primary)"))
	assert.True(t, rules.IsStrictColor("inherit"))

	assert.True(t, rules.IsColor("rgb(foo)"), "loose check only looks at the shape")
	assert.False(t, rules.IsStrictColor("rgb(foo)"))
	assert.False(t, rules.IsStrictColor("red"), "keywords outside the allowed four stay invalid")
}

func TestNormalizeColor(t *testing.T) {
	hex, ok := rules.NormalizeColor("#FFF")
	assert.True(t, ok)
	assert.Equal(t, "#ffffff", hex)

	_, ok = rules.NormalizeColor("var(--x)")
	assert.False(t, ok)
}

func TestIsSpacing(t *testing.T) {
	for _, v := range []string{"0.25rem", "1rem", ".5em", "-8px", "100%", "10vw", "5vh", "16px"} {
		assert.True(t, rules.IsSpacing(v), v)
	}
	for _, v := range []string{"1", "rem", "1 rem", "1pt", "calc(1rem + 2px)", "+1rem"} {
		assert.False(t, rules.IsSpacing(v), v)
	}
}

func TestIsFontSize(t *testing.T) {
	for _, v := range []string{"1rem", "14px", "0.875em", "clamp(1rem, 2vw, 2rem)"} {
		assert.True(t, rules.IsFontSize(v), v)
	}
	for _, v := range []string{"-1rem", "12pt", "100%", "clamp(1rem, calc(1rem + 1vw), 2rem)", "clamp()"} {
		assert.False(t, rules.IsFontSize(v), v)
	}
}

func TestIsDuration(t *testing.T) {
	assert.True(t, rules.IsDuration("200ms"))
	assert.True(t, rules.IsDuration("0ms"))
	assert.False(t, rules.IsDuration("2rem"))
	assert.False(t, rules.IsDuration("0.2s"))
	assert.False(t, rules.IsDuration("1.5ms"))
	assert.False(t, rules.IsDuration("200"))
}

func TestIsEasing(t *testing.T) {
	for _, v := range []string{"ease", "ease-in", "ease-out", "ease-in-out", "linear", "cubic-bezier(0.4, 0, 0.2, 1)"} {
		assert.True(t, rules.IsEasing(v), v)
	}
	for _, v := range []string{"ease-in-out-back", "steps(4)", "cubic-bezier()", "Linear"} {
		assert.False(t, rules.IsEasing(v), v)
	}
}
