// Package html finds the stylesheets embedded in a page so their root
// tokens can be validated like a standalone .css file.
package html

import (
	"fmt"
	"sync"

	"bennypowers.dev/tokenlint/internal/parser/css"
	"bennypowers.dev/tokenlint/internal/position"
	"bennypowers.dev/tokenlint/internal/tokens"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// StyleRegion is the text of one <style> element
type StyleRegion struct {
	Content string
	// StartByte is the offset of Content within the page
	StartByte uint
}

// Parser extracts <style> contents with tree-sitter
type Parser struct {
	parser     *sitter.Parser
	styleQuery *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element (raw_text) @css)`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile style query: %v", qerr))
		}

		return &Parser{parser: parser, styleQuery: styleQuery}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and its query
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.styleQuery != nil {
		p.styleQuery.Close()
	}
}

// ClosePool closes parsers currently idle in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// StyleRegions returns the contents of every <style> element in document order
func (p *Parser) StyleRegions(source string) []StyleRegion {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var regions []StyleRegion
	matches := cursor.Matches(p.styleQuery, tree.RootNode(), src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			node := capture.Node
			regions = append(regions, StyleRegion{
				Content:   string(src[node.StartByte():node.EndByte()]),
				StartByte: node.StartByte(),
			})
		}
	}
	return regions
}

// Extract returns the root tokens of the first <style> element that has a
// :root block. Token positions refer to the page, not the style element.
func (p *Parser) Extract(source, origin string) *tokens.Set {
	for _, region := range p.StyleRegions(source) {
		if _, ok := css.FindRootBlock(region.Content); !ok {
			continue
		}
		set := css.ExtractFrom(region.Content, origin)
		relocate(set, source, region)
		return set
	}
	return tokens.NewSet()
}

// relocate maps positions inside region to positions inside the page
func relocate(set *tokens.Set, page string, region StyleRegion) {
	startLine, startChar := position.NewIndex(page).Position(int(region.StartByte))
	for _, t := range set.Tokens() {
		if t.Line == 0 {
			t.Character += startChar
		}
		t.Line += startLine
	}
}
