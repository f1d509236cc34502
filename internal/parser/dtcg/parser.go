// Package dtcg reads Design Tokens Community Group token files into a
// token set named the way the tokens appear as CSS custom properties.
package dtcg

import (
	"fmt"
	"os"
	"strings"

	asimonimParser "bennypowers.dev/asimonim/parser"
	"bennypowers.dev/asimonim/resolver"
	"bennypowers.dev/asimonim/schema"
	"bennypowers.dev/asimonim/validator"
	"bennypowers.dev/tokenlint/internal/log"
	"bennypowers.dev/tokenlint/internal/tokens"
)

// Parse reads JSON or YAML token data. Token paths become hyphenated names,
// so {"space": {"md": {"$value": "1rem"}}} yields space-md. A non-empty
// prefix is prepended as prefix-name. Aliases such as {space.md} take the
// value they refer to.
func Parse(data []byte, prefix string) (*tokens.Set, error) {
	return parse(data, prefix, "")
}

// ParseFile reads and parses the token file at path
func ParseFile(path, prefix string) (*tokens.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", path, err)
	}
	return parse(data, prefix, path)
}

func parse(data []byte, prefix, origin string) (*tokens.Set, error) {
	parser := asimonimParser.NewJSONParser()
	parsed, err := parser.Parse(data, asimonimParser.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse design tokens: %w", err)
	}

	version := schema.Draft
	for _, t := range parsed {
		if t.SchemaVersion != schema.Unknown {
			version = t.SchemaVersion
			break
		}
	}
	for _, ve := range validator.ValidateConsistencyWithPath(data, version, origin) {
		log.Warn("Schema validation: %s", ve.Error())
	}

	if err := resolver.ResolveAliases(parsed, version); err != nil {
		log.Warn("Failed to resolve token aliases: %v", err)
	}

	set := tokens.NewSet()
	for _, t := range parsed {
		value := t.Value
		if resolved, ok := t.ResolvedValue.(string); ok && t.IsResolved {
			value = resolved
		}
		name := strings.ReplaceAll(t.Name, ".", "-")
		if prefix != "" {
			name = strings.ReplaceAll(prefix, ".", "-") + "-" + name
		}
		set.Put(&tokens.Token{
			Name:   name,
			Value:  value,
			Source: origin,
		})
	}

	log.Info("Loaded %d design tokens from %s", set.Len(), describe(origin))
	return set, nil
}

func describe(origin string) string {
	if origin == "" {
		return "memory"
	}
	return origin
}
