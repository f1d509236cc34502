package tokens

import "strings"

// Token is a design value declared as a custom property at root scope,
// e.g. `--space-md: 1rem;` yields Name "space-md" and Value "1rem".
type Token struct {
	// Name is the property name without the leading "--"
	Name string `json:"name"`

	// Value is the trimmed right-hand side as written
	Value string `json:"value"`

	// Source is the file path or URI the token was read from, if any
	Source string `json:"-"`

	// Line is the 0-based line of the declaration in Source
	Line uint32 `json:"-"`

	// Character is the 0-based column of the declaration in Source
	Character uint32 `json:"-"`
}

// CSSVariableName returns the custom property name, e.g. "--space-md"
func (t *Token) CSSVariableName() string {
	return "--" + t.Name
}

// HasPrefix reports whether the token name starts with prefix
func (t *Token) HasPrefix(prefix string) bool {
	return strings.HasPrefix(t.Name, prefix)
}
