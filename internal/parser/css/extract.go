package css

import (
	"regexp"
	"strings"

	"bennypowers.dev/tokenlint/internal/position"
	"bennypowers.dev/tokenlint/internal/tokens"
)

// declarationRegexp matches `--name: value;` inside a root block body.
// The name runs to the first colon, the value to the terminating semicolon.
var declarationRegexp = regexp.MustCompile(`--([^:;]+):\s*([^;]+);`)

const rootSelector = ":root"

// Block is the body of a root-scope rule
type Block struct {
	// Body is the text between the braces
	Body string
	// Offset is the byte offset of Body within the scanned source
	Offset int
}

// FindRootBlock locates the first `:root {...}` rule in source. The scan
// skips comments and stops at the first closing brace after the opening
// one. A `:root` that is not followed by `{` is passed over.
func FindRootBlock(source string) (Block, bool) {
	i := 0
	for i < len(source) {
		if strings.HasPrefix(source[i:], "/*") {
			end := strings.Index(source[i+2:], "*/")
			if end < 0 {
				return Block{}, false
			}
			i += 2 + end + 2
			continue
		}

		if !strings.HasPrefix(source[i:], rootSelector) {
			i++
			continue
		}

		j := i + len(rootSelector)
		for j < len(source) && isSpace(source[j]) {
			j++
		}
		if j >= len(source) || source[j] != '{' {
			i += len(rootSelector)
			continue
		}

		bodyStart := j + 1
		closing := strings.IndexByte(source[bodyStart:], '}')
		if closing < 0 {
			return Block{}, false
		}
		return Block{Body: source[bodyStart : bodyStart+closing], Offset: bodyStart}, true
	}
	return Block{}, false
}

// Extract returns the custom properties declared in the first root block of
// source. A source without a root block yields an empty set. Declarations
// lacking a terminating semicolon or a value are not matched; a repeated
// name keeps its last value.
func Extract(source string) *tokens.Set {
	return ExtractFrom(source, "")
}

// ExtractFrom is Extract with the origin of source recorded on each token
func ExtractFrom(source, origin string) *tokens.Set {
	set := tokens.NewSet()

	block, ok := FindRootBlock(source)
	if !ok {
		return set
	}

	index := position.NewIndex(source)
	for _, m := range declarationRegexp.FindAllStringSubmatchIndex(block.Body, -1) {
		name := strings.TrimSpace(block.Body[m[2]:m[3]])
		value := strings.TrimSpace(block.Body[m[4]:m[5]])
		if name == "" || value == "" {
			continue
		}
		line, character := index.Position(block.Offset + m[0])
		set.Put(&tokens.Token{
			Name:      name,
			Value:     value,
			Source:    origin,
			Line:      line,
			Character: character,
		})
	}
	return set
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
