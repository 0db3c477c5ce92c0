package report

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleDeps = map[string][]string{
	"main.js":       {"lib/util.js", "missing.js"},
	"lib/util.js":   {},
	"lib/theme.css": {},
}

func TestJSON(t *testing.T) {
	out := JSON(sampleDeps)

	doc, err := oj.ParseString(string(out))
	require.NoError(t, err)

	got := jp.MustParseString(`$['main.js'][*]`).Get(doc)
	assert.Equal(t, []any{"lib/util.js", "missing.js"}, got)

	empty := jp.MustParseString(`$['lib/util.js']`).Get(doc)
	require.Len(t, empty, 1)
	assert.Equal(t, []any{}, empty[0])

	assert.Contains(t, string(out), "\n  \"lib/theme.css\"", "two-space indent")
	assert.Less(t, strings.Index(string(out), "lib/theme.css"), strings.Index(string(out), "main.js"), "keys sorted")
}

func TestWriterWrite(t *testing.T) {
	fs := memfs.New()
	w := &Writer{FS: fs, Now: func() time.Time { return fixedNow }, HTML: true}

	dir := filepath.FromSlash("/out/main")
	paths, err := w.Write(sampleDeps, nil, dir, "main")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "main.json"), paths.JSON)
	assert.Equal(t, filepath.Join(dir, "main.md"), paths.Markdown)
	assert.Equal(t, filepath.Join(dir, "main.html"), paths.HTML)
	assert.Empty(t, paths.SQLite)

	md, err := util.ReadFile(fs, paths.Markdown)
	require.NoError(t, err)
	assert.Contains(t, string(md), "* **Total Files:** 3\n")

	page, err := util.ReadFile(fs, paths.HTML)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<table>")
	assert.Contains(t, string(page), "<h1>Dependency Report: main</h1>")
}

func TestWriterWritesAreIndependent(t *testing.T) {
	fs := memfs.New()
	dir := filepath.FromSlash("/out")
	// A directory squatting on the JSON path makes that one write fail.
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "main.json"), 0o755))

	w := &Writer{FS: fs, Now: func() time.Time { return fixedNow }}
	paths, err := w.Write(sampleDeps, nil, dir, "main")

	assert.Error(t, err)
	assert.Empty(t, paths.JSON)
	assert.Equal(t, filepath.Join(dir, "main.md"), paths.Markdown)
	_, statErr := fs.Stat(paths.Markdown)
	assert.NoError(t, statErr)
}

func TestWriterSQLite(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{
		FS:     osfs.New("/"),
		Now:    func() time.Time { return fixedNow },
		SQLite: true,
		Records: []FileRecord{
			{Source: "/src/main.js", Destination: "/out/main.js", Status: "copied", Transforms: "none", Checksum: 42},
			{Source: "/src/missing.js", Status: "missing", Transforms: "none"},
		},
	}
	cycles := [][]string{{"main.js", "lib/util.js"}}

	paths, err := w.Write(sampleDeps, cycles, dir, "main")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "main.db"), paths.SQLite)

	db, err := sql.Open("sqlite", paths.SQLite)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&n))
	assert.Equal(t, 3, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM edges WHERE src = 'main.js'`).Scan(&n))
	assert.Equal(t, 2, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM cycles WHERE cycle = 0`).Scan(&n))
	assert.Equal(t, 2, n)

	var status string
	var dest sql.NullString
	require.NoError(t, db.QueryRow(`SELECT status, destination FROM files WHERE source = '/src/missing.js'`).Scan(&status, &dest))
	assert.Equal(t, "missing", status)
	assert.False(t, dest.Valid)

	// Rerunning replaces the tables instead of appending.
	_, err = w.Write(sampleDeps, cycles, dir, "main")
	require.NoError(t, err)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&n))
	assert.Equal(t, 3, n)
}
