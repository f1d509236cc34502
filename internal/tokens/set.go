package tokens

import (
	"maps"
	"slices"
	"strings"
)

// Set maps token names to tokens. Names are unique: putting a token whose
// name is already present replaces the earlier one, matching the cascade.
// The zero value is not usable; use NewSet. A nil *Set reads as empty.
type Set struct {
	byName map[string]*Token
}

// NewSet creates an empty Set
func NewSet() *Set {
	return &Set{byName: make(map[string]*Token)}
}

// FromMap builds a Set from name -> raw value pairs
func FromMap(values map[string]string) *Set {
	s := NewSet()
	for name, value := range values {
		s.Put(&Token{Name: name, Value: value})
	}
	return s
}

// Put inserts t, overwriting any token with the same name
func (s *Set) Put(t *Token) {
	s.byName[t.Name] = t
}

// Get returns the token with the given name, or nil
func (s *Set) Get(name string) *Token {
	if s == nil {
		return nil
	}
	return s.byName[name]
}

// Value returns the raw value for name and whether it is defined
func (s *Set) Value(name string) (string, bool) {
	t := s.Get(name)
	if t == nil {
		return "", false
	}
	return t.Value, true
}

// Len returns the number of tokens
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byName)
}

// Names returns all token names in ascending order
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.byName))
}

// WithPrefix returns the sorted names that start with prefix
func (s *Set) WithPrefix(prefix string) []string {
	var names []string
	for _, name := range s.Names() {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names
}

// Tokens returns all tokens ordered by name
func (s *Set) Tokens() []*Token {
	names := s.Names()
	out := make([]*Token, 0, len(names))
	for _, name := range names {
		out = append(out, s.byName[name])
	}
	return out
}

// Map returns a copy of the set as name -> raw value
func (s *Set) Map() map[string]string {
	out := make(map[string]string, s.Len())
	for _, t := range s.Tokens() {
		out[t.Name] = t.Value
	}
	return out
}
