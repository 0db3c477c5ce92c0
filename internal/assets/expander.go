// Package assets grows a closure with the non-code files that live next to
// its members (stylesheets, images) and are typically referenced at build
// time rather than through imports.
package assets

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/agentic-research/carve/internal/closure"
)

var ErrInvalidPattern = errors.New("invalid asset pattern")

// DefaultPatterns are the asset globs used when a profile sets none.
var DefaultPatterns = []string{"*.css", "*.scss", "*.sass", "*.svg", "*.png", "*.jpg"}

const dirCacheSize = 256

// Expander appends sibling assets to a path list. Build one per run;
// directory listings are cached for its lifetime.
type Expander struct {
	fs       billy.Filesystem
	patterns []glob.Glob
	dirs     *lru.Cache[string, []string]
	added    int
}

// NewExpander compiles patterns (DefaultPatterns when empty). Patterns are
// matched against lower-cased file names.
func NewExpander(fs billy.Filesystem, patterns []string) (*Expander, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	matchers, err := compileGlobs(patterns)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[string, []string](dirCacheSize)
	if err != nil {
		return nil, err
	}
	return &Expander{fs: fs, patterns: matchers, dirs: cache}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		m, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, errors.Join(ErrInvalidPattern, err)
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// Expand returns paths followed by every matching sibling asset, in
// discovery order, without duplicates. Input members are never dropped.
// Directories that cannot be listed are skipped.
func (e *Expander) Expand(paths []string) []string {
	set := closure.NewSet(paths...)
	before := set.Len()

	for _, p := range paths {
		for _, asset := range e.siblings(filepath.Dir(p)) {
			set.Add(asset)
		}
	}

	e.added = set.Len() - before
	return set.Paths()
}

// Added reports how many assets the last Expand appended.
func (e *Expander) Added() int { return e.added }

func (e *Expander) siblings(dir string) []string {
	if cached, ok := e.dirs.Get(dir); ok {
		return cached
	}

	var found []string
	entries, err := e.fs.ReadDir(dir)
	if err == nil {
		for _, entry := range entries {
			if !entry.Mode().IsRegular() {
				continue
			}
			if e.match(strings.ToLower(entry.Name())) {
				found = append(found, filepath.Join(dir, entry.Name()))
			}
		}
	}
	e.dirs.Add(dir, found)
	return found
}

func (e *Expander) match(name string) bool {
	for _, m := range e.patterns {
		if m.Match(name) {
			return true
		}
	}
	return false
}
