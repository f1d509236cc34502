package css

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/tokenlint/internal/position"
	"bennypowers.dev/tokenlint/internal/tokens"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser extracts root-scope custom properties from a tree-sitter CSS tree
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: parser}
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

// Close releases the underlying tree-sitter parser
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
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

// ParseRoot returns the custom properties of the first rule set whose
// selector list contains `:root`. It agrees with Extract on well-formed
// stylesheets and additionally ignores braces inside comments and strings.
func (p *Parser) ParseRoot(source string) (*tokens.Set, error) {
	return p.ParseRootFrom(source, "")
}

// ParseRootFrom is ParseRoot with the origin recorded on each token
func (p *Parser) ParseRootFrom(source, origin string) (*tokens.Set, error) {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	set := tokens.NewSet()
	block := findRootRuleBlock(tree.RootNode(), src)
	if block == nil {
		return set, nil
	}

	index := position.NewIndex(source)
	for i := uint(0); i < block.ChildCount(); i++ {
		child := block.Child(i)
		if child == nil || child.Kind() != "declaration" {
			continue
		}
		if t := declarationToken(child, src); t != nil {
			t.Source = origin
			t.Line, t.Character = index.Position(int(child.StartByte()))
			set.Put(t)
		}
	}
	return set, nil
}

// findRootRuleBlock returns the block of the first top-level `:root` rule set
func findRootRuleBlock(root *sitter.Node, src []byte) *sitter.Node {
	for i := uint(0); i < root.ChildCount(); i++ {
		rule := root.Child(i)
		if rule == nil || rule.Kind() != "rule_set" {
			continue
		}

		var selectors, block *sitter.Node
		for j := uint(0); j < rule.ChildCount(); j++ {
			c := rule.Child(j)
			switch c.Kind() {
			case "selectors":
				selectors = c
			case "block":
				block = c
			}
		}
		if selectors == nil || block == nil {
			continue
		}
		if selectsRoot(text(selectors, src)) {
			return block
		}
	}
	return nil
}

// selectsRoot reports whether a selector list ends in `:root` immediately
// before its block, which is what FindRootBlock accepts
func selectsRoot(selectors string) bool {
	return strings.HasSuffix(strings.TrimSpace(selectors), rootSelector)
}

// declarationToken converts a `--name: value;` declaration node. Declarations
// without a terminating semicolon and non-custom properties yield nil.
func declarationToken(decl *sitter.Node, src []byte) *tokens.Token {
	var name string
	valueStart, valueEnd := -1, -1

	for i := uint(0); i < decl.ChildCount(); i++ {
		c := decl.Child(i)
		switch c.Kind() {
		case "property_name":
			name = text(c, src)
		case ":":
			valueStart = int(c.EndByte())
		case ";":
			valueEnd = int(c.StartByte())
		}
	}

	if !strings.HasPrefix(name, "--") || valueStart < 0 || valueEnd < valueStart {
		return nil
	}

	value := strings.TrimSpace(string(src[valueStart:valueEnd]))
	if value == "" {
		return nil
	}
	return &tokens.Token{
		Name:  strings.TrimSpace(strings.TrimPrefix(name, "--")),
		Value: value,
	}
}

func text(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}
