// Package module resolves AXO import/use paths to files on disk. It knows
// nothing about parsing or evaluation — that stays in pkg/interpreter,
// which uses this package purely for path resolution and cycle tracking,
// following the split daios-ai-msg draws between its module.go "public API"
// (resolution + caching policy) and its interpreter's evaluation step.
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolve turns an import/use path spec into an absolute file path,
// relative to the importing file's directory (spec.md §4.7):
//   - a path with an explicit .axo or .json extension is used as-is
//   - otherwise <spec>.axo is tried, then <spec>/index.axo
func Resolve(spec string, importerDir string) (string, error) {
	candidate := spec
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(importerDir, spec)
	}
	ext := filepath.Ext(candidate)
	if ext == ".axo" || ext == ".json" {
		if fileExists(candidate) {
			return filepath.Clean(candidate), nil
		}
		return "", fmt.Errorf("module not found: %s", spec)
	}

	if withExt := candidate + ".axo"; fileExists(withExt) {
		return filepath.Clean(withExt), nil
	}
	if indexed := filepath.Join(candidate, "index.axo"); fileExists(indexed) {
		return filepath.Clean(indexed), nil
	}
	return "", fmt.Errorf("module not found: %s", spec)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsJSON reports whether the resolved path should be loaded as a plain
// JSON data module rather than parsed as AXO source.
func IsJSON(resolvedPath string) bool {
	return strings.EqualFold(filepath.Ext(resolvedPath), ".json")
}

// Cache tracks in-progress and completed module loads, keyed by canonical
// absolute path, to guard against import cycles. Per spec.md §4.7, a
// module's entry is marked in-progress BEFORE its body is evaluated, so a
// cyclic re-entry sees the (possibly partial) in-progress record instead of
// recursing forever or erroring outright.
type Cache struct {
	entries map[string]*Entry
}

// Entry is one cached module's load state. Loading is true from Begin until
// Finish. The caller may set Result while Loading is still true (the
// interpreter stores its in-progress export table there so a cyclic
// re-entry can see it); Finish clears Loading and records Result and Err.
type Entry struct {
	Loading bool
	Result  interface{} // the interpreter's *ModuleExports export table
	Err     error
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Entry)}
}

// Begin marks path as in-progress and returns its entry plus whether it was
// already present (either in-progress or completed).
func (c *Cache) Begin(path string) (*Entry, bool) {
	if e, ok := c.entries[path]; ok {
		return e, true
	}
	e := &Entry{Loading: true}
	c.entries[path] = e
	return e, false
}

// Finish records the completed result for path and clears its in-progress flag.
func (c *Cache) Finish(path string, result interface{}, err error) {
	e := c.entries[path]
	if e == nil {
		e = &Entry{}
		c.entries[path] = e
	}
	e.Loading = false
	e.Result = result
	e.Err = err
}
