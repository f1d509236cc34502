package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/tokenlint/internal/config"
	"bennypowers.dev/tokenlint/internal/source"
	consistency "bennypowers.dev/tokenlint/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.Equal(t, []string{"**/*.css"}, cfg.Inputs)
	assert.Equal(t, consistency.DefaultNumRuns, cfg.NumRuns)
	assert.Nil(t, cfg.Seed)
	assert.Nil(t, cfg.RequiredColorSubcategories)
	assert.Equal(t, "regex", cfg.Extractor)
	assert.Equal(t, "text", cfg.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	cfg, err := config.Load(filepath.Join("testdata", "tokenlint.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"styles/**/*.css", "index.html"}, cfg.Inputs)
	assert.Equal(t, []string{"styles/vendor/**"}, cfg.Exclude)
	assert.Equal(t, 250, cfg.NumRuns)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.Equal(t, []string{"bg", "text"}, cfg.RequiredColorSubcategories)
	assert.Equal(t, []string{"xs", "sm", "md", "lg"}, cfg.SpacingScale)
	assert.Nil(t, cfg.FontWeightScale)
	assert.True(t, cfg.StrictColors)
	assert.Equal(t, "json", cfg.Format)

	opts := cfg.ValidatorOptions()
	assert.Equal(t, 250, opts.NumRuns)
	assert.Equal(t, uint64(42), *opts.Seed)
	assert.True(t, opts.StrictColors)
	assert.Equal(t, source.ExtractorTreeSitter, cfg.SourceOptions().Extractor)
}

func TestLoadJSONC(t *testing.T) {
	cfg, err := config.Load(filepath.Join("testdata", "tokenlint.jsonc"))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.NumRuns)
	assert.NotNil(t, cfg.RequiredColorSubcategories)
	assert.Empty(t, cfg.RequiredColorSubcategories)
	assert.Equal(t, "ds", cfg.SourceOptions().Prefix)
	// unspecified fields keep their defaults
	assert.Equal(t, []string{"**/*.css"}, cfg.Inputs)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"negative runs", "numRuns: -1\n", "numRuns"},
		{"unknown extractor", "extractor: lexer\n", "extractor"},
		{"unknown format", "format: xml\n", "format"},
		{"unknown log level", "logLevel: loud\n", "logLevel"},
		{"duplicate scale key", "spacingScale: [sm, sm]\n", "spacingScale"},
		{"empty scale key", "lineHeightScale: [tight, \"\"]\n", "lineHeightScale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tokenlint.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := config.Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)

			var ice *config.InvalidConfigError
			require.ErrorAs(t, err, &ice)
			assert.Equal(t, path, ice.Path)
			assert.Contains(t, ice.Reason, tt.field)
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokenlint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("numRuns: [1, 2\n"), 0o600))

	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokenlint.toml")
	require.NoError(t, os.WriteFile(path, []byte("numRuns = 1\n"), 0o600))

	_, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestDiscover(t *testing.T) {
	t.Run("no config", func(t *testing.T) {
		cfg, path, err := config.Discover(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, config.DefaultConfig(), cfg)
	})

	t.Run("yaml wins over package.json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tokenlint.yml"), []byte("numRuns: 7\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"tokenlint": {"numRuns": 3}}`), 0o600))

		cfg, path, err := config.Discover(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "tokenlint.yml"), path)
		assert.Equal(t, 7, cfg.NumRuns)
	})

	t.Run("package.json field", func(t *testing.T) {
		dir := t.TempDir()
		pkg := `{
			// comments are allowed
			"name": "site",
			"tokenlint": {"numRuns": 3, "strictColors": true}
		}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(pkg), 0o600))

		cfg, path, err := config.Discover(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "package.json"), path)
		assert.Equal(t, 3, cfg.NumRuns)
		assert.True(t, cfg.StrictColors)
	})

	t.Run("package.json without field", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name": "site"}`), 0o600))

		_, path, err := config.Discover(dir)
		require.NoError(t, err)
		assert.Empty(t, path)
	})
}
