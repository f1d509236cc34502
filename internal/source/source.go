// Package source turns stylesheets, pages and token files into token sets.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bennypowers.dev/tokenlint/internal/parser/css"
	"bennypowers.dev/tokenlint/internal/parser/dtcg"
	"bennypowers.dev/tokenlint/internal/parser/html"
	"bennypowers.dev/tokenlint/internal/tokens"
)

// Kind is the document format tokens are read from
type Kind string

const (
	KindCSS  Kind = "css"
	KindHTML Kind = "html"
	KindDTCG Kind = "dtcg"
)

// Extractor selects how :root declarations are read from CSS
type Extractor string

const (
	ExtractorRegex      Extractor = "regex"
	ExtractorTreeSitter Extractor = "tree-sitter"
)

// Options controls how a source is read
type Options struct {
	Extractor Extractor
	// Prefix is prepended to DTCG token names
	Prefix string
}

var extensions = map[string]Kind{
	".css":  KindCSS,
	".html": KindHTML,
	".htm":  KindHTML,
	".json": KindDTCG,
	".yaml": KindDTCG,
	".yml":  KindDTCG,
}

// languages maps LSP language IDs to the kinds they carry
var languages = map[string]Kind{
	"css":  KindCSS,
	"html": KindHTML,
}

// KindOf reports the kind of a file by extension
func KindOf(path string) (Kind, bool) {
	k, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return k, ok
}

// KindForLanguage reports the kind of an editor document by language ID
func KindForLanguage(languageID string) (Kind, bool) {
	k, ok := languages[languageID]
	return k, ok
}

// Supported reports whether path has a known extension
func Supported(path string) bool {
	_, ok := KindOf(path)
	return ok
}

// HiddenDir reports whether a directory name is hidden, like .git or
// .cache. Input discovery and watching never descend into one.
func HiddenDir(name string) bool {
	return len(name) > 1 && name[0] == '.'
}

// Load reads the file at path and extracts its tokens
func Load(path string, opts Options) (*tokens.Set, error) {
	kind, ok := KindOf(path)
	if !ok {
		return nil, NewUnsupportedInputError(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data, kind, path, opts)
}

// Parse extracts tokens from content of the given kind. origin is recorded
// as each token's source.
func Parse(content []byte, kind Kind, origin string, opts Options) (*tokens.Set, error) {
	switch kind {
	case KindCSS:
		if opts.Extractor == ExtractorTreeSitter {
			p := css.AcquireParser()
			defer css.ReleaseParser(p)
			return p.ParseRootFrom(string(content), origin)
		}
		return css.ExtractFrom(string(content), origin), nil

	case KindHTML:
		p := html.AcquireParser()
		defer html.ReleaseParser(p)
		return p.Extract(string(content), origin), nil

	case KindDTCG:
		set, err := dtcg.Parse(content, opts.Prefix)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", origin, err)
		}
		for _, t := range set.Tokens() {
			t.Source = origin
		}
		return set, nil

	default:
		return nil, NewUnsupportedInputError(origin)
	}
}
