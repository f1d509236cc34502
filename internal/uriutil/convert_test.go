package uriutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}
	tests := []struct {
		name string
		path string
		want string
	}{
		{"absolute", "/home/user/site/style.css", "file:///home/user/site/style.css"},
		{"root", "/", "file:///"},
		{"spaces", "/home/user/my site/style.css", "file:///home/user/my%20site/style.css"},
		{"unicode", "/home/用户/style.css", "file:///home/%E7%94%A8%E6%88%B7/style.css"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromPath(tt.path))
		})
	}
}

func TestToPath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
		ok   bool
	}{
		{"file", "file:///home/user/style.css", filepath.FromSlash("/home/user/style.css"), true},
		{"encoded", "file:///home/user/my%20site/a.css", filepath.FromSlash("/home/user/my site/a.css"), true},
		{"drive letter", "file:///C:/site/a.css", filepath.FromSlash("C:/site/a.css"), true},
		{"untitled", "untitled:Untitled-1", "", false},
		{"https", "https://example.com/a.css", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToPath(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "with space", "style.css")
	got, ok := ToPath(FromPath(path))
	assert.True(t, ok)
	assert.Equal(t, path, got)
}

func TestBase(t *testing.T) {
	assert.Equal(t, "style.css", Base("file:///site/style.css"))
	assert.Equal(t, "Untitled-1", Base("untitled:Untitled-1"))
	assert.Equal(t, "x", Base("x"))
}
