// Package site inventories how a page script wires itself to the DOM and
// serves the display records its dialogs show.
package site

import (
	"fmt"
	"slices"
	"sync"

	"bennypowers.dev/tokenlint/internal/log"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// Binding is one addEventListener call whose receiver could be traced to a
// selector
type Binding struct {
	Selector string `json:"selector"`
	Event    string `json:"event"`
	Line     uint   `json:"line"`
}

// Parser finds event bindings in JavaScript source
type Parser struct {
	parser        *sitter.Parser
	listenerQuery *sitter.Query
	declQuery     *sitter.Query
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}

		listenerQuery, qerr := sitter.NewQuery(jsLang, `
			(call_expression
				function: (member_expression
					object: (_) @receiver
					property: (property_identifier) @method)
				arguments: (arguments . (string) @event))
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile listener query: %v", qerr))
		}

		declQuery, qerr := sitter.NewQuery(jsLang, `
			(variable_declarator
				name: (identifier) @name
				value: (call_expression) @value)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile declaration query: %v", qerr))
		}

		return &Parser{parser: parser, listenerQuery: listenerQuery, declQuery: declQuery}
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

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.listenerQuery != nil {
		p.listenerQuery.Close()
	}
	if p.declQuery != nil {
		p.declQuery.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Bindings parses source with a pooled parser
func Bindings(source string) []Binding {
	p := AcquireParser()
	defer ReleaseParser(p)
	return p.Bindings(source)
}

// Bindings lists the {selector, event} pairs of source in document order.
// Receivers are traced through document.querySelector(All) and
// getElementById calls, const bindings of those calls, and forEach
// callback parameters. window and document are their own selectors.
func (p *Parser) Bindings(source string) []Binding {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	r := &resolver{src: src, decls: p.declarations(root, src)}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var out []Binding
	matches := cursor.Matches(p.listenerQuery, root, src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var receiver, event sitter.Node
		var method string
		for _, capture := range match.Captures {
			switch p.listenerQuery.CaptureNames()[capture.Index] {
			case "receiver":
				receiver = capture.Node
			case "method":
				method = text(&capture.Node, src)
			case "event":
				event = capture.Node
			}
		}
		if method != "addEventListener" {
			continue
		}

		selector, ok := r.resolve(&receiver, 0)
		if !ok {
			log.Debug("Could not trace listener receiver %q", text(&receiver, src))
			continue
		}
		out = append(out, Binding{
			Selector: selector,
			Event:    unquote(text(&event, src)),
			Line:     event.StartPosition().Row,
		})
	}

	slices.SortStableFunc(out, func(a, b Binding) int {
		return int(a.Line) - int(b.Line)
	})
	return out
}

func (p *Parser) declarations(root *sitter.Node, src []byte) map[string]sitter.Node {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	decls := make(map[string]sitter.Node)
	matches := cursor.Matches(p.declQuery, root, src)
	for match := matches.Next(); match != nil; match = matches.Next() {
		var name string
		var value sitter.Node
		for _, capture := range match.Captures {
			switch p.declQuery.CaptureNames()[capture.Index] {
			case "name":
				name = text(&capture.Node, src)
			case "value":
				value = capture.Node
			}
		}
		if _, seen := decls[name]; !seen && name != "" {
			decls[name] = value
		}
	}
	return decls
}

// maxDepth bounds receiver tracing through chained declarations
const maxDepth = 8

type resolver struct {
	src   []byte
	decls map[string]sitter.Node
}

func (r *resolver) resolve(n *sitter.Node, depth int) (string, bool) {
	if n == nil || depth > maxDepth {
		return "", false
	}
	switch n.Kind() {
	case "identifier":
		name := text(n, r.src)
		if name == "window" || name == "document" {
			return name, true
		}
		if list, declared := r.forEachSource(n, name); declared {
			return r.resolve(list, depth+1)
		}
		if value, ok := r.decls[name]; ok {
			return r.resolve(&value, depth+1)
		}
	case "call_expression":
		return r.query(n)
	case "parenthesized_expression":
		if n.NamedChildCount() == 1 {
			return r.resolve(n.NamedChild(0), depth+1)
		}
	}
	return "", false
}

// query reads the selector of a querySelector, querySelectorAll or
// getElementById call
func (r *resolver) query(call *sitter.Node) (string, bool) {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "member_expression" {
		return "", false
	}
	prop := fn.ChildByFieldName("property")
	args := call.ChildByFieldName("arguments")
	if prop == nil || args == nil || args.NamedChildCount() == 0 {
		return "", false
	}
	arg := args.NamedChild(0)
	if arg.Kind() != "string" {
		return "", false
	}
	value := unquote(text(arg, r.src))

	switch text(prop, r.src) {
	case "querySelector", "querySelectorAll":
		return value, true
	case "getElementById":
		return "#" + value, true
	}
	return "", false
}

// forEachSource finds the innermost function declaring name as a parameter.
// declared is false when no enclosing function does; list is nil unless that
// function is a forEach callback, in which case it is the iterated list.
func (r *resolver) forEachSource(use *sitter.Node, name string) (list *sitter.Node, declared bool) {
	for fn := use.Parent(); fn != nil; fn = fn.Parent() {
		switch fn.Kind() {
		case "arrow_function", "function_expression", "function", "function_declaration":
		default:
			continue
		}
		if !r.declaresParam(fn, name) {
			continue
		}
		args := fn.Parent()
		if args == nil || args.Kind() != "arguments" {
			return nil, true
		}
		call := args.Parent()
		if call == nil || call.Kind() != "call_expression" {
			return nil, true
		}
		member := call.ChildByFieldName("function")
		if member == nil || member.Kind() != "member_expression" {
			return nil, true
		}
		prop := member.ChildByFieldName("property")
		if prop == nil || text(prop, r.src) != "forEach" {
			return nil, true
		}
		return member.ChildByFieldName("object"), true
	}
	return nil, false
}

func (r *resolver) declaresParam(fn *sitter.Node, name string) bool {
	if param := fn.ChildByFieldName("parameter"); param != nil {
		return text(param, r.src) == name
	}
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return false
	}
	for i := uint(0); i < params.NamedChildCount(); i++ {
		child := params.NamedChild(i)
		if child.Kind() == "identifier" && text(child, r.src) == name {
			return true
		}
	}
	return false
}

func text(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
