// Package treesync materializes a closure into an isolated target tree,
// renaming UI-flavored code files and fixing the imports that point at them.
package treesync

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/agentic-research/carve/api"
	"github.com/agentic-research/carve/internal/uiflavor"
)

// DefaultFlavors pairs .js with .jsx.
var DefaultFlavors = []api.Flavor{{Plain: ".js", UI: ".jsx"}}

type Option func(*Syncer)

// WithFlavors replaces the plain/UI extension pairs. Empty keeps the default.
func WithFlavors(flavors []api.Flavor) Option {
	return func(s *Syncer) {
		if len(flavors) > 0 {
			s.flavors = flavors
		}
	}
}

// WithRewriteMode selects api.RewriteResolved or api.RewriteAlways.
func WithRewriteMode(mode string) Option {
	return func(s *Syncer) {
		if mode != "" {
			s.mode = mode
		}
	}
}

// WithWarnf redirects per-file warnings. Defaults to log.Printf.
func WithWarnf(fn func(format string, args ...any)) Option {
	return func(s *Syncer) { s.warnf = fn }
}

// Syncer copies files into a target tree. It never aborts a batch:
// every source ends up as exactly one Record.
type Syncer struct {
	fs         billy.Filesystem
	classifier *uiflavor.Classifier
	flavors    []api.Flavor
	rewriters  []*rewriter
	mode       string
	warnf      func(format string, args ...any)
}

func NewSyncer(fs billy.Filesystem, classifier *uiflavor.Classifier, opts ...Option) *Syncer {
	if classifier == nil {
		classifier = uiflavor.NewClassifier()
	}
	s := &Syncer{
		fs:         fs,
		classifier: classifier,
		flavors:    DefaultFlavors,
		mode:       api.RewriteResolved,
		warnf:      log.Printf,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, f := range s.flavors {
		s.rewriters = append(s.rewriters, newRewriter(f))
	}
	return s
}

// pending is a readable source waiting to be written.
type pending struct {
	rec     Record
	content string
	perm    fs.FileMode
}

// CopyAll copies every path to target, keeping its location relative to
// base. The whole batch is read and classified before anything is written
// so import rewrites know which targets changed extension.
func (s *Syncer) CopyAll(paths []string, base, target string) *Result {
	res := &Result{}
	plans := make([]*pending, len(paths))
	records := make([]Record, len(paths))
	renamed := make(map[string]bool)

	for i, src := range paths {
		src = filepath.Clean(src)
		rec := Record{Source: src}

		info, err := s.fs.Stat(src)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				rec.Status = StatusMissing
				s.warnf("treesync: missing source file %s", src)
			} else {
				rec.Status, rec.Err = StatusFailed, fmt.Errorf("stat %s: %w", src, err)
				s.warnf("treesync: failed to copy %s: %v", src, err)
			}
			records[i] = rec
			continue
		}
		if !info.Mode().IsRegular() {
			rec.Status = StatusMissing
			s.warnf("treesync: missing source file %s (not a regular file)", src)
			records[i] = rec
			continue
		}

		dest, err := destination(src, base, target)
		if err != nil {
			rec.Status, rec.Err = StatusFailed, err
			s.warnf("treesync: failed to copy %s: %v", src, err)
			records[i] = rec
			continue
		}

		data, err := util.ReadFile(s.fs, src)
		if err != nil {
			rec.Status, rec.Err = StatusFailed, fmt.Errorf("read %s: %w", src, err)
			s.warnf("treesync: failed to copy %s: %v", src, err)
			records[i] = rec
			continue
		}

		if ui, ok := s.uiExtension(filepath.Ext(src)); ok && s.classifier.IsUIFlavored(data) {
			dest = strings.TrimSuffix(dest, filepath.Ext(dest)) + ui
			rec.Transforms |= ExtensionRenamed
			renamed[src] = true
		}

		rec.Destination = dest
		perm := info.Mode().Perm()
		if perm == 0 {
			perm = 0o644
		}
		plans[i] = &pending{rec: rec, content: string(data), perm: perm}
	}

	for i, p := range plans {
		if p == nil {
			res.add(records[i])
			continue
		}
		res.add(s.write(p, renamed))
	}
	return res
}

func (s *Syncer) write(p *pending, renamed map[string]bool) Record {
	rec := p.rec
	content := p.content

	if s.isCode(filepath.Ext(rec.Source)) {
		dir := filepath.Dir(rec.Source)
		keep := func(spec string) bool {
			return renamed[filepath.Join(dir, filepath.FromSlash(spec))]
		}
		if s.mode == api.RewriteAlways {
			keep = nil
		}
		total := 0
		for _, rw := range s.rewriters {
			var n int
			content, n = rw.rewrite(content, keep)
			total += n
		}
		if total > 0 {
			rec.Transforms |= ImportsRewritten
		}
	}

	if err := s.fs.MkdirAll(filepath.Dir(rec.Destination), 0o755); err != nil {
		return s.fail(rec, fmt.Errorf("create directory for %s: %w", rec.Destination, err))
	}
	data := []byte(content)
	if err := writeAtomic(s.fs, rec.Destination, data, p.perm); err != nil {
		return s.fail(rec, fmt.Errorf("write %s: %w", rec.Destination, err))
	}

	sum, err := Checksum(data)
	if err != nil {
		return s.fail(rec, fmt.Errorf("checksum %s: %w", rec.Destination, err))
	}
	rec.Checksum = sum
	rec.Status = StatusCopied
	return rec
}

func (s *Syncer) fail(rec Record, err error) Record {
	rec.Status, rec.Err = StatusFailed, err
	s.warnf("treesync: failed to copy %s: %v", rec.Source, err)
	return rec
}

func (s *Syncer) uiExtension(ext string) (string, bool) {
	for _, f := range s.flavors {
		if ext == f.Plain {
			return f.UI, true
		}
	}
	return "", false
}

func (s *Syncer) isCode(ext string) bool {
	for _, f := range s.flavors {
		if ext == f.Plain || ext == f.UI {
			return true
		}
	}
	return false
}

// destination maps src under base to the same relative location under
// target. A source equal to base (single-file closure) lands at
// target/basename(src).
func destination(src, base, target string) (string, error) {
	rel, err := filepath.Rel(base, src)
	if err != nil {
		return "", fmt.Errorf("relate %s to %s: %w", src, base, err)
	}
	if rel == "." {
		return filepath.Join(target, filepath.Base(src)), nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", src, base)
	}
	return filepath.Join(target, rel), nil
}
