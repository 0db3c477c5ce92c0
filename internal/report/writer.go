// Package report writes the dependency graph of an extraction as JSON and
// Markdown, and optionally as HTML and SQLite.
package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Paths lists the artifacts a Write produced. Empty fields were not
// requested or failed.
type Paths struct {
	JSON     string
	Markdown string
	HTML     string
	SQLite   string
}

// Writer writes report artifacts. The SQLite database is opened through
// the OS directly, so it requires an FS rooted at "/" (osfs) to land in
// the same place as the other artifacts.
type Writer struct {
	FS  billy.Filesystem
	Now func() time.Time

	HTML   bool
	SQLite bool

	// Records, when set, fill the files table of the SQLite artifact.
	Records []FileRecord
}

// Write creates dir if needed and writes every requested artifact named
// after name. Each artifact is attempted independently; failures are
// joined and returned with the paths that did get written.
func (w *Writer) Write(deps map[string][]string, cycles [][]string, dir, name string) (Paths, error) {
	var paths Paths
	if err := w.FS.MkdirAll(dir, 0o755); err != nil {
		return paths, fmt.Errorf("create report dir %s: %w", dir, err)
	}

	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	narrative := Narrative(name, deps, cycles, now())

	var errs []error
	write := func(ext string, data []byte) string {
		p := filepath.Join(dir, name+ext)
		if err := util.WriteFile(w.FS, p, data, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", p, err))
			return ""
		}
		return p
	}

	paths.JSON = write(".json", JSON(deps))
	paths.Markdown = write(".md", []byte(narrative))

	if w.HTML {
		page, err := HTML(name, narrative)
		if err != nil {
			errs = append(errs, err)
		} else {
			paths.HTML = write(".html", page)
		}
	}

	if w.SQLite {
		p := filepath.Join(dir, name+".db")
		if err := WriteSQLite(p, deps, cycles, w.Records); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", p, err))
		} else {
			paths.SQLite = p
		}
	}

	return paths, errors.Join(errs...)
}
