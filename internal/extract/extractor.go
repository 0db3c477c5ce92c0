// Package extract runs the extraction pipeline: analyze an entry file,
// compute its closure, pull in sibling assets, copy everything into a
// fresh target tree and write the dependency reports next to it.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/agentic-research/carve/api"
	"github.com/agentic-research/carve/internal/assets"
	"github.com/agentic-research/carve/internal/closure"
	"github.com/agentic-research/carve/internal/config"
	"github.com/agentic-research/carve/internal/console"
	"github.com/agentic-research/carve/internal/depgraph"
	"github.com/agentic-research/carve/internal/report"
	"github.com/agentic-research/carve/internal/treesync"
	"github.com/agentic-research/carve/internal/uiflavor"
)

// Request names what to extract and where. Relative paths are resolved
// against WorkDir.
type Request struct {
	Entry      string
	OutputRoot string
	WorkDir    string
}

// Outcome describes a finished (or aborted) run.
type Outcome struct {
	State   State
	Visited []State

	Entry  string
	Target string
	Base   string

	Graph   *depgraph.Graph
	Cycles  [][]string
	Closure []string
	Copy    []string // closure plus assets, in copy order
	Assets  int
	Sync    *treesync.Result
	Reports report.Paths
}

func (o *Outcome) enter(s State) {
	o.State = s
	o.Visited = append(o.Visited, s)
}

func (o *Outcome) fail(err error) error {
	o.enter(Failed)
	return err
}

// Extractor holds the collaborators of a run. It is safe to reuse across
// runs but not concurrently on the same target.
type Extractor struct {
	FS      billy.Filesystem
	Source  depgraph.Source
	Profile *api.Profile
	Console *console.Printer
	Now     func() time.Time

	classifier *uiflavor.Classifier
}

// New wires an Extractor. A nil profile selects config.Default, a nil
// source the tree-sitter analyzer, a nil printer discards narration.
func New(fsys billy.Filesystem, source depgraph.Source, profile *api.Profile, printer *console.Printer) (*Extractor, error) {
	if profile == nil {
		profile = config.Default()
	}
	if source == nil {
		source = depgraph.NewSitterSource(fsys, profile.Resolve.Extensions)
	}
	if printer == nil {
		printer = console.New(io.Discard, io.Discard, false)
	}
	hs, err := uiflavor.FromProfile(profile.Heuristics)
	if err != nil {
		return nil, err
	}
	return &Extractor{
		FS:         fsys,
		Source:     source,
		Profile:    profile,
		Console:    printer,
		Now:        time.Now,
		classifier: uiflavor.NewClassifier(hs...),
	}, nil
}

// Run performs a full extraction into OutputRoot/<entry name>. The target
// directory is removed first. Per-file copy problems are recorded in
// Outcome.Sync and do not fail the run; permission failures always do.
func (e *Extractor) Run(ctx context.Context, req Request) (*Outcome, error) {
	out := &Outcome{State: Idle, Visited: []State{Idle}}

	out.enter(Validating)
	entry, root, err := e.validate(req)
	if err != nil {
		return out, out.fail(err)
	}
	name := ComponentName(entry)
	out.Entry = entry
	out.Target = filepath.Join(root, name)

	out.enter(Cleaning)
	if err := e.clean(out.Target); err != nil {
		return out, out.fail(err)
	}

	out.enter(Analyzing)
	g, err := e.analyze(ctx, entry, name)
	if err != nil {
		return out, out.fail(err)
	}
	out.Graph = g
	out.Cycles = g.Circular()

	out.enter(Closuring)
	out.Closure = closure.FromGraph(g, entry)
	out.Base = closure.RootDir(out.Closure)
	e.Console.Infof("📍 Common Base identified: %s", out.Base)

	out.enter(Expanding)
	expander, err := assets.NewExpander(e.FS, e.Profile.Assets)
	if err != nil {
		return out, out.fail(err)
	}
	out.Copy = expander.Expand(out.Closure)
	out.Assets = expander.Added()
	e.Console.Infof("🎨 Added %d assets to the queue.", out.Assets)

	out.enter(Syncing)
	syncer := treesync.NewSyncer(e.FS, e.classifier,
		treesync.WithFlavors(e.Profile.Flavors),
		treesync.WithRewriteMode(e.Profile.Rewrite),
		treesync.WithWarnf(e.Console.Warnf),
	)
	out.Sync = syncer.CopyAll(out.Copy, out.Base, out.Target)
	e.printSync(out.Sync)
	for _, rec := range out.Sync.Failed {
		if IsPermission(rec.Err) {
			e.permissionDenied(out.Target)
			return out, out.fail(&PermissionError{Op: "copy", Path: rec.Source, Err: rec.Err})
		}
	}

	out.enter(Reporting)
	paths, err := e.writeReports(g, out.Cycles, out.Target, name, out.Sync)
	out.Reports = paths
	if err != nil {
		if IsPermission(err) {
			e.permissionDenied(out.Target)
			return out, out.fail(&PermissionError{Op: "report", Path: out.Target, Err: err})
		}
		e.Console.Errorf("Failed to process reports: %v", err)
	} else {
		e.Console.Successf("✅ Reports saved to: %s", out.Target)
	}

	out.enter(Done)
	e.Console.Banner("🚀 EXTRACTION COMPLETE!")
	e.Console.Infof("📍 Location: %s", out.Target)
	e.Console.Rule()
	e.Console.Infof("To view your component:")
	e.Console.Infof("→   cd \"%s\"", out.Target)
	e.Console.Infof("You may need to install missing dependencies manually.")
	return out, nil
}

// Report analyzes the entry and writes the dependency reports straight
// into OutputRoot. Nothing is copied or removed.
func (e *Extractor) Report(ctx context.Context, req Request) (*Outcome, error) {
	out := &Outcome{State: Idle, Visited: []State{Idle}}

	out.enter(Validating)
	entry, dir, err := e.validate(req)
	if err != nil {
		return out, out.fail(err)
	}
	name := ComponentName(entry)
	out.Entry = entry
	out.Target = dir

	out.enter(Analyzing)
	g, err := e.analyze(ctx, entry, name)
	if err != nil {
		return out, out.fail(err)
	}
	out.Graph = g
	out.Cycles = g.Circular()

	out.enter(Reporting)
	paths, err := e.writeReports(g, out.Cycles, dir, name, nil)
	out.Reports = paths
	if err != nil {
		if IsPermission(err) {
			e.permissionDenied(dir)
			return out, out.fail(&PermissionError{Op: "report", Path: dir, Err: err})
		}
		e.Console.Errorf("Failed to process reports: %v", err)
	} else {
		e.Console.Successf("✅ Reports saved to: %s", dir)
	}

	out.enter(Done)
	return out, nil
}

// ComponentName is the entry's base name without its extension.
func ComponentName(entry string) string {
	base := filepath.Base(entry)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (e *Extractor) validate(req Request) (entry, root string, err error) {
	if strings.TrimSpace(req.Entry) == "" || strings.TrimSpace(req.OutputRoot) == "" {
		e.Console.Errorf("%v", ErrUsage)
		return "", "", ErrUsage
	}
	if entry, err = e.abs(req.WorkDir, req.Entry); err != nil {
		return "", "", err
	}
	if root, err = e.abs(req.WorkDir, req.OutputRoot); err != nil {
		return "", "", err
	}

	info, err := e.FS.Stat(entry)
	switch {
	case err == nil && info.IsDir():
		e.Console.Errorf("Entry is a directory: %s", req.Entry)
		return "", "", fmt.Errorf("%w: entry %s is a directory", ErrUsage, entry)
	case err == nil:
		return entry, root, nil
	case errors.Is(err, fs.ErrNotExist):
		e.Console.Errorf("File not found: %s", req.Entry)
		return "", "", fmt.Errorf("%w: %s", ErrNotFound, entry)
	case IsPermission(err):
		e.permissionDenied(entry)
		return "", "", &PermissionError{Op: "stat", Path: entry, Err: err}
	default:
		return "", "", fmt.Errorf("stat entry %s: %w", entry, err)
	}
}

func (e *Extractor) abs(workDir, p string) (string, error) {
	p = filepath.Clean(p)
	if filepath.IsAbs(p) {
		return p, nil
	}
	if workDir == "" {
		return "", fmt.Errorf("%w: relative path %s without a working directory", ErrUsage, p)
	}
	return filepath.Join(workDir, p), nil
}

func (e *Extractor) clean(target string) error {
	if _, err := e.FS.Lstat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return e.cleanFailed(target, err)
	}

	e.Console.Infof("🧹 Cleaning up old extraction at %s...", target)
	if err := util.RemoveAll(e.FS, target); err != nil {
		return e.cleanFailed(target, err)
	}
	return nil
}

func (e *Extractor) cleanFailed(target string, err error) error {
	e.Console.Errorf("\n❌ Could not clean up %s", target)
	e.Console.Errorf("   %v", err)
	if IsPermission(err) {
		e.Console.Errorf("   💡 You may not have write permissions for this folder.")
		return &PermissionError{Op: "clean", Path: target, Err: err}
	}
	return fmt.Errorf("clean %s: %w", target, err)
}

func (e *Extractor) analyze(ctx context.Context, entry, name string) (*depgraph.Graph, error) {
	e.Console.Infof("🚀 Analyzing %s...", name)
	g, err := e.Source.Analyze(ctx, entry, depgraph.Options{BaseDir: filepath.Dir(entry)})
	if err == nil {
		return g, nil
	}
	if IsPermission(err) {
		e.permissionDenied(entry)
		return nil, &PermissionError{Op: "analyze", Path: entry, Err: err}
	}
	e.Console.Errorf("Failed to analyze %s: %v", entry, err)
	return nil, &AnalysisError{Entry: entry, Err: err}
}

func (e *Extractor) writeReports(g *depgraph.Graph, cycles [][]string, dir, name string, res *treesync.Result) (report.Paths, error) {
	w := &report.Writer{
		FS:     e.FS,
		Now:    e.Now,
		HTML:   e.Profile.Report.HTML,
		SQLite: e.Profile.Report.SQLite,
	}
	if res != nil {
		w.Records = fileRecords(res)
	}
	return w.Write(g.Obj(), cycles, dir, name)
}

func (e *Extractor) printSync(res *treesync.Result) {
	e.Console.Infof("\nFinal Sync Report:")
	e.Console.Successf("✅ Copied: %d", res.CopiedCount())
	if res.MissingCount() > 0 {
		e.Console.Warnf("⚠️ Missing: %d", res.MissingCount())
	}
	if res.FailedCount() > 0 {
		e.Console.Warnf("❌ Failed: %d", res.FailedCount())
	}
}

func (e *Extractor) permissionDenied(dest string) {
	e.Console.Errorf("\n❌ Permission denied while writing files!")
	e.Console.Errorf("   Destination: %s", dest)
	e.Console.Errorf("   💡 Please check you have write access to this location.")
}

func fileRecords(res *treesync.Result) []report.FileRecord {
	out := make([]report.FileRecord, 0, res.Total())
	for _, r := range res.Records {
		fr := report.FileRecord{
			Source:      r.Source,
			Destination: r.Destination,
			Status:      r.Status.String(),
			Transforms:  r.Transforms.String(),
			Checksum:    r.Checksum,
		}
		if r.Err != nil {
			fr.Error = r.Err.Error()
		}
		out = append(out, fr)
	}
	return out
}
