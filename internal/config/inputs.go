package config

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"bennypowers.dev/tokenlint/internal/collections"
	"bennypowers.dev/tokenlint/internal/source"
	"github.com/bmatcuk/doublestar/v4"
)

// ResolveInputs walks root and returns the sorted paths of supported files
// matching Inputs and not matching Exclude.
func (c *Config) ResolveInputs(root string) ([]string, error) {
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, NewInvalidConfigError("", fmt.Sprintf("invalid exclude pattern: %s", pattern))
		}
	}
	for _, pattern := range c.Inputs {
		if !doublestar.ValidatePattern(pattern) {
			return nil, NewInvalidConfigError("", fmt.Sprintf("invalid input pattern: %s", pattern))
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	found := collections.NewSet[string]()
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != absRoot && c.SkipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if c.excluded(rel) || !source.Supported(path) {
			return nil
		}
		if c.included(rel) {
			found.Add(path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return collections.Sorted(found), nil
}

// SkipDir reports whether the directory rel, relative to the project root,
// is left out of discovery: hidden directories and those matched by Exclude
func (c *Config) SkipDir(rel string) bool {
	rel = filepath.ToSlash(rel)
	return source.HiddenDir(path.Base(rel)) || c.excluded(rel)
}

// Excluded reports whether path, relative to the project root, is excluded
func (c *Config) Excluded(rel string) bool {
	return c.excluded(filepath.ToSlash(rel))
}

func (c *Config) excluded(rel string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.PathMatch(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (c *Config) included(rel string) bool {
	for _, pattern := range c.Inputs {
		if ok, _ := doublestar.PathMatch(pattern, rel); ok {
			return true
		}
	}
	return false
}

// ExpandArgs resolves command-line paths: directories are walked with the
// configured patterns and files are taken as given.
func (c *Config) ExpandArgs(args []string) ([]string, error) {
	seen := collections.NewSet[string]()
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		paths := []string{arg}
		if info.IsDir() {
			if paths, err = c.ResolveInputs(arg); err != nil {
				return nil, err
			}
		}
		for _, p := range paths {
			if seen.AddNew(p) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}
