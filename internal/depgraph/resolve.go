package depgraph

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// DefaultExtensions are tried, in order, when a specifier names no file.
var DefaultExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"}

// IsLocal reports whether spec points into the codebase (relative or
// absolute path) rather than at an external package.
func IsLocal(spec string) bool {
	switch {
	case spec == "." || spec == "..":
		return true
	case strings.HasPrefix(spec, "./"), strings.HasPrefix(spec, "../"):
		return true
	case strings.HasPrefix(spec, "/"):
		return true
	}
	return filepath.IsAbs(filepath.FromSlash(spec))
}

// Resolver maps a local import specifier to a file on disk.
type Resolver struct {
	FS         billy.Filesystem
	Extensions []string
}

// Resolve returns the absolute path spec refers to from a file in fromDir.
// found is false when no candidate exists; path is then the lexical
// location the specifier names, so callers can still report it.
func (r *Resolver) Resolve(fromDir, spec string) (path string, found bool) {
	// Drop query strings and fragments some bundlers allow ("./a.svg?raw").
	if i := strings.IndexAny(spec, "?#"); i > 0 {
		spec = spec[:i]
	}

	base := filepath.FromSlash(spec)
	if !filepath.IsAbs(base) {
		base = filepath.Join(fromDir, base)
	}
	base = filepath.Clean(base)

	if r.isFile(base) {
		return base, true
	}
	for _, ext := range r.extensions() {
		if p := base + ext; r.isFile(p) {
			return p, true
		}
	}
	// TypeScript ESM sources import "./x.js" for a file named x.ts.
	if ext := filepath.Ext(base); ext == ".js" || ext == ".jsx" {
		stem := strings.TrimSuffix(base, ext)
		for _, alt := range []string{".ts", ".tsx"} {
			if p := stem + alt; r.isFile(p) {
				return p, true
			}
		}
	}
	for _, ext := range r.extensions() {
		if p := filepath.Join(base, "index"+ext); r.isFile(p) {
			return p, true
		}
	}
	return base, false
}

func (r *Resolver) extensions() []string {
	if len(r.Extensions) > 0 {
		return r.Extensions
	}
	return DefaultExtensions
}

func (r *Resolver) isFile(p string) bool {
	info, err := r.FS.Stat(p)
	return err == nil && !info.IsDir()
}
