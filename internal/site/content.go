package site

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// titleSeparator ends the short form of a content key
const titleSeparator = "："

// Entry is one record shown in the detail dialog
type Entry struct {
	Title   string `yaml:"title" json:"title"`
	Meta    string `yaml:"meta" json:"meta"`
	Content string `yaml:"content" json:"content"`
}

// ContentStore holds dialog records under short keys in file order
type ContentStore struct {
	keys    []string
	entries map[string]Entry
}

// LoadContent reads a YAML mapping of key to {title, meta, content}
func LoadContent(path string) (*ContentStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content %s: %w", path, err)
	}
	store, err := ParseContent(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// ParseContent reads content records, keeping the order keys appear in
func ParseContent(data []byte) (*ContentStore, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	store := &ContentStore{entries: make(map[string]Entry)}
	if len(doc.Content) == 0 {
		return store, nil
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("content must be a mapping, got line %d", mapping.Line)
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		var entry Entry
		if err := mapping.Content[i+1].Decode(&entry); err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		if _, dup := store.entries[key]; !dup {
			store.keys = append(store.keys, key)
		}
		store.entries[key] = entry
	}
	return store, nil
}

// Keys returns the record keys in file order
func (s *ContentStore) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Get returns the record stored under key
func (s *ContentStore) Get(key string) (Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Lookup finds the record for a visible title: the first key whose text
// before any full-width colon appears in the title
func (s *ContentStore) Lookup(title string) (string, Entry, bool) {
	for _, key := range s.keys {
		short, _, _ := strings.Cut(key, titleSeparator)
		if short != "" && strings.Contains(title, short) {
			return key, s.entries[key], true
		}
	}
	return "", Entry{}, false
}
