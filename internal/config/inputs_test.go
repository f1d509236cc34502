package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/tokenlint/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(":root { --space-md: 1rem; }"), 0o600))
	}
}

func TestResolveInputs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"style.css",
		"styles/theme.css",
		"styles/vendor/reset.css",
		"node_modules/pkg/pkg.css",
		".cache/old.css",
		"index.html",
		"script.js",
	)

	t.Run("defaults", func(t *testing.T) {
		cfg := config.DefaultConfig()
		got, err := cfg.ResolveInputs(root)
		require.NoError(t, err)

		absRoot, err := filepath.Abs(root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(absRoot, "style.css"),
			filepath.Join(absRoot, "styles", "theme.css"),
			filepath.Join(absRoot, "styles", "vendor", "reset.css"),
		}, got)
	})

	t.Run("include and exclude", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Inputs = []string{"styles/**/*.css", "*.html", "*.js"}
		cfg.Exclude = []string{"styles/vendor/**"}

		got, err := cfg.ResolveInputs(root)
		require.NoError(t, err)

		absRoot, err := filepath.Abs(root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(absRoot, "index.html"),
			filepath.Join(absRoot, "styles", "theme.css"),
		}, got)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Inputs = []string{"styles/[*.css"}
		_, err := cfg.ResolveInputs(root)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestSkipDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Exclude = append(cfg.Exclude, "styles/legacy/**")

	for rel, want := range map[string]bool{
		"styles":          false,
		"styles/vendor":   false,
		"vendor":          false,
		"dist":            false,
		".git":            true,
		"styles/.cache":   true,
		"styles/legacy/x": true,
	} {
		assert.Equal(t, want, cfg.SkipDir(rel), rel)
	}
}

func TestExpandArgs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.css", "sub/b.css")

	cfg := config.DefaultConfig()
	file := filepath.Join(root, "a.css")
	got, err := cfg.ExpandArgs([]string{file, filepath.Join(root, "sub"), file})
	require.NoError(t, err)

	absSub, err := filepath.Abs(filepath.Join(root, "sub"))
	require.NoError(t, err)
	assert.Equal(t, []string{file, filepath.Join(absSub, "b.css")}, got)

	_, err = cfg.ExpandArgs([]string{filepath.Join(root, "missing.css")})
	assert.Error(t, err)
}

func TestExcluded(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.True(t, cfg.Excluded("node_modules/pkg/a.css"))
	assert.False(t, cfg.Excluded("styles/a.css"))
}
