package css_test

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/tokenlint/internal/parser/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRootSimple(t *testing.T) {
	parser := css.AcquireParser()
	defer css.ReleaseParser(parser)

	set, err := parser.ParseRoot(`:root {
  --color-bg-primary: #0a0a0a;
  --space-md: 1rem;
}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"color-bg-primary": "#0a0a0a",
		"space-md":         "1rem",
	}, set.Map())

	tok := set.Get("space-md")
	require.NotNil(t, tok)
	assert.Equal(t, uint32(2), tok.Line)
	assert.Equal(t, uint32(2), tok.Character)
}

func TestParseRootIgnoresOtherRules(t *testing.T) {
	parser := css.AcquireParser()
	defer css.ReleaseParser(parser)

	set, err := parser.ParseRoot(`body { --not-a-token: 1px; color: red; }`)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestParseRootSkipsRegularProperties(t *testing.T) {
	parser := css.AcquireParser()
	defer css.ReleaseParser(parser)

	set, err := parser.ParseRoot(`:root { color-scheme: dark; --a: 1px; }`)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1px"}, set.Map())
}

func TestParseRootAgreesWithExtract(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "style.css"))
	require.NoError(t, err)

	parser := css.AcquireParser()
	defer css.ReleaseParser(parser)

	fromTree, err := parser.ParseRootFrom(string(data), "style.css")
	require.NoError(t, err)
	fromScan := css.ExtractFrom(string(data), "style.css")

	assert.Equal(t, fromScan.Map(), fromTree.Map())
	for _, tok := range fromScan.Tokens() {
		other := fromTree.Get(tok.Name)
		require.NotNil(t, other, tok.Name)
		assert.Equal(t, tok.Line, other.Line, tok.Name)
		assert.Equal(t, "style.css", other.Source)
	}
}
