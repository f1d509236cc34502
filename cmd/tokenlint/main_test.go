package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command line and returns its output and exit code
func execute(t *testing.T, args ...string) (string, int) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return out.String(), exitOK
	}
	if exit, ok := err.(*exitCodeError); ok {
		return out.String(), exit.code
	}
	return out.String() + err.Error(), exitError
}

type checkOutput struct {
	OK    bool `json:"ok"`
	Files []struct {
		Path     string `json:"path"`
		Tokens   int    `json:"tokens"`
		OK       bool   `json:"ok"`
		Seed     uint64 `json:"seed"`
		Checks   int    `json:"checks"`
		Failures []struct {
			Category string `json:"category"`
			Token    string `json:"token"`
			Rule     string `json:"rule"`
		} `json:"failures"`
		Error string `json:"error"`
	} `json:"files"`
}

func decodeCheck(t *testing.T, out string) checkOutput {
	t.Helper()
	var doc checkOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)
	return doc
}

func TestCheckPasses(t *testing.T) {
	out, code := execute(t, "check", "--format", "json", "--seed", "7", filepath.Join("testdata", "pass.css"))
	require.Equal(t, exitOK, code, out)

	doc := decodeCheck(t, out)
	assert.True(t, doc.OK)
	require.Len(t, doc.Files, 1)
	assert.Equal(t, 28, doc.Files[0].Tokens)
	assert.Equal(t, uint64(7), doc.Files[0].Seed)
	assert.Empty(t, doc.Files[0].Failures)
}

func TestCheckReportsFailures(t *testing.T) {
	out, code := execute(t, "check", "--format", "json", "--exhaustive", filepath.Join("testdata", "fail.css"))
	require.Equal(t, exitFailures, code, out)

	doc := decodeCheck(t, out)
	assert.False(t, doc.OK)
	require.Len(t, doc.Files, 1)
	require.Len(t, doc.Files[0].Failures, 1)
	f := doc.Files[0].Failures[0]
	assert.Equal(t, "duration", f.Category)
	assert.Equal(t, "duration-fast", f.Token)
	assert.Equal(t, "value predicate failed", f.Rule)
}

func TestCheckSameSeedSameReport(t *testing.T) {
	args := []string{"check", "--format", "json", "--seed", "42", "--num-runs", "5", filepath.Join("testdata", "fail.css")}
	first, _ := execute(t, args...)
	second, _ := execute(t, args...)
	assert.JSONEq(t, first, second)
}

func TestCheckUnreadableInputIsAnError(t *testing.T) {
	out, code := execute(t, "check", "--format", "json",
		filepath.Join("testdata", "pass.css"), filepath.Join("testdata", "broken.json"))
	require.Equal(t, exitError, code, out)

	doc := decodeCheck(t, out)
	require.Len(t, doc.Files, 2)
	assert.True(t, doc.Files[0].OK)
	assert.NotEmpty(t, doc.Files[1].Error)
}

func TestCheckDirectoryUsesConfiguredInputs(t *testing.T) {
	out, code := execute(t, "check", "--format", "json", "testdata")
	assert.Equal(t, exitFailures, code)

	doc := decodeCheck(t, out)
	var paths []string
	for _, f := range doc.Files {
		paths = append(paths, filepath.Base(f.Path))
	}
	// the default inputs select stylesheets only
	assert.ElementsMatch(t, []string{"fail.css", "pass.css"}, paths)
}

func TestCheckTextOutput(t *testing.T) {
	out, code := execute(t, "check", filepath.Join("testdata", "fail.css"))
	assert.Equal(t, exitFailures, code)
	assert.Contains(t, out, "duration-fast")
	assert.Contains(t, out, "1 files checked, 1 failed")
}

func TestCheckExtractorFlag(t *testing.T) {
	assert.Equal(t, "regex", newCheckCmd().Flags().Lookup("extractor").DefValue)

	for _, extractor := range []string{"regex", "tree-sitter"} {
		out, code := execute(t, "check", "--format", "json", "--extractor", extractor, filepath.Join("testdata", "pass.css"))
		require.Equal(t, exitOK, code, out)
		assert.Equal(t, 28, decodeCheck(t, out).Files[0].Tokens, extractor)
	}
}

func TestCheckRejectsInvalidFlags(t *testing.T) {
	_, code := execute(t, "check", "--extractor", "magic", filepath.Join("testdata", "pass.css"))
	assert.Equal(t, exitError, code)

	_, code = execute(t, "check", "--format", "xml", filepath.Join("testdata", "pass.css"))
	assert.Equal(t, exitError, code)

	_, code = execute(t, "check", filepath.Join("testdata", "missing.css"))
	assert.Equal(t, exitError, code)
}

func TestBindings(t *testing.T) {
	out, code := execute(t, "bindings", "--format", "json", filepath.Join("testdata", "script.js"))
	require.Equal(t, exitOK, code, out)

	var bindings []struct {
		Selector string `json:"selector"`
		Event    string `json:"event"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &bindings))
	assert.Contains(t, bindings, struct {
		Selector string `json:"selector"`
		Event    string `json:"event"`
	}{"#contactForm", "submit"})
}

func TestLookup(t *testing.T) {
	content := filepath.Join("testdata", "content.yaml")

	out, code := execute(t, "lookup", "--content", content, "Beyond Prompts: context is king")
	require.Equal(t, exitOK, code, out)
	assert.Contains(t, out, `"key": "Beyond Prompts：context first"`)

	_, code = execute(t, "lookup", "--content", content, "Unrelated")
	assert.Equal(t, exitFailures, code)
}

func TestVersion(t *testing.T) {
	out, code := execute(t, "version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "tokenlint ")
}
