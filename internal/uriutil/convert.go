// Package uriutil converts between editor document URIs and file paths.
package uriutil

import (
	"net/url"
	"path/filepath"
	"strings"
)

// FromPath converts a file system path to a file:// URI with each path
// segment percent-encoded
func FromPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		// C:/proj -> /C:/proj
		abs = "/" + abs
	}

	segments := strings.Split(abs, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return "file://" + strings.Join(segments, "/")
}

// ToPath converts a file:// URI to a file system path. It reports false for
// other schemes, such as untitled: buffers.
func ToPath(uri string) (string, bool) {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return "", false
	}

	path := parsed.Path
	if parsed.Host != "" && parsed.Host != "localhost" {
		path = "//" + parsed.Host + path
	}
	// /C:/proj -> C:/proj
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), true
}

// Base returns the last element of a URI's path, or the URI itself when it
// has none
func Base(uri string) string {
	if path, ok := ToPath(uri); ok {
		return filepath.Base(path)
	}
	if i := strings.LastIndexAny(uri, "/:"); i >= 0 && i < len(uri)-1 {
		return uri[i+1:]
	}
	return uri
}
