package depgraph

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Options configures a single analysis.
type Options struct {
	// BaseDir is the directory node identifiers are relative to.
	// Defaults to the entry's directory.
	BaseDir string
}

// Source builds the dependency graph rooted at an entry file.
type Source interface {
	Analyze(ctx context.Context, entry string, opts Options) (*Graph, error)
}

// SitterSource discovers dependencies by parsing JavaScript and TypeScript
// files with tree-sitter and resolving their local import specifiers.
type SitterSource struct {
	FS       billy.Filesystem
	Resolver *Resolver

	// Warnf receives per-file parse problems. Defaults to log.Printf.
	Warnf func(format string, args ...any)
}

func NewSitterSource(fs billy.Filesystem, extensions []string) *SitterSource {
	return &SitterSource{
		FS:       fs,
		Resolver: &Resolver{FS: fs, Extensions: extensions},
		Warnf:    log.Printf,
	}
}

// Analyze walks the import graph breadth-first from entry. Each file is
// read and parsed once; files whose type carries no imports (stylesheets,
// images) become leaf nodes. Unresolvable local specifiers are kept as
// edges to their lexical path and never visited.
func (s *SitterSource) Analyze(ctx context.Context, entry string, opts Options) (*Graph, error) {
	entry = filepath.Clean(entry)
	if _, err := s.FS.Stat(entry); err != nil {
		return nil, fmt.Errorf("stat entry %s: %w", entry, err)
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(entry)
	}
	g := NewGraph(baseDir)

	queue := []string{entry}
	queued := map[string]bool{entry: true}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file := queue[0]
		queue = queue[1:]

		id := g.ID(file)
		g.AddNode(id)

		specs, err := s.imports(ctx, file)
		if err != nil {
			if file == entry {
				return nil, err
			}
			s.warnf("depgraph: skipping imports of %s: %v", file, err)
			continue
		}

		dir := filepath.Dir(file)
		for _, spec := range specs {
			if !IsLocal(spec) {
				continue
			}
			target, found := s.Resolver.Resolve(dir, spec)
			g.AddEdge(id, g.ID(target))
			if found && !queued[target] {
				queued[target] = true
				queue = append(queue, target)
			}
		}
	}
	return g, nil
}

func (s *SitterSource) imports(ctx context.Context, file string) ([]string, error) {
	_, lang, ok := DetectLanguageFromExt(filepath.Ext(file))
	if !ok {
		return nil, nil
	}
	src, err := util.ReadFile(s.FS, file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	specs, err := ParseImports(ctx, src, lang)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return specs, nil
}

func (s *SitterSource) warnf(format string, args ...any) {
	if s.Warnf != nil {
		s.Warnf(format, args...)
	}
}
