package report

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// FileRecord is the copy outcome of one closure member, as stored in the
// files table.
type FileRecord struct {
	Source      string
	Destination string
	Status      string
	Transforms  string
	Checksum    uint64
	Error       string
}

const sqliteSchema = `
	DROP TABLE IF EXISTS nodes;
	DROP TABLE IF EXISTS edges;
	DROP TABLE IF EXISTS cycles;
	DROP TABLE IF EXISTS files;

	CREATE TABLE nodes (
		id TEXT PRIMARY KEY
	);
	CREATE TABLE edges (
		src TEXT NOT NULL,
		dst TEXT NOT NULL,
		ord INTEGER NOT NULL,
		PRIMARY KEY (src, dst)
	) WITHOUT ROWID;
	CREATE TABLE cycles (
		cycle INTEGER NOT NULL,
		pos INTEGER NOT NULL,
		node TEXT NOT NULL,
		PRIMARY KEY (cycle, pos)
	) WITHOUT ROWID;
	CREATE TABLE files (
		source TEXT PRIMARY KEY,
		destination TEXT,
		status TEXT NOT NULL,
		transforms TEXT NOT NULL,
		checksum TEXT,
		error TEXT
	);
	CREATE INDEX idx_edges_dst ON edges(dst);
`

// WriteSQLite stores the graph, its cycles and the copy records in a
// SQLite database at dbPath. Existing tables are replaced.
func WriteSQLite(dbPath string, deps map[string][]string, cycles [][]string, records []FileRecord) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		return err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := insertAll(tx, deps, cycles, records); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertAll(tx *sql.Tx, deps map[string][]string, cycles [][]string, records []FileRecord) error {
	stmtNode, err := tx.Prepare(`INSERT INTO nodes (id) VALUES (?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmtNode.Close() }()

	stmtEdge, err := tx.Prepare(`INSERT OR IGNORE INTO edges (src, dst, ord) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmtEdge.Close() }()

	for _, id := range sortedKeys(deps) {
		if _, err := stmtNode.Exec(id); err != nil {
			return fmt.Errorf("insert node %s: %w", id, err)
		}
		for i, dep := range deps[id] {
			if _, err := stmtEdge.Exec(id, dep, i); err != nil {
				return fmt.Errorf("insert edge %s -> %s: %w", id, dep, err)
			}
		}
	}

	for ci, c := range cycles {
		for pos, node := range c {
			if _, err := tx.Exec(`INSERT INTO cycles (cycle, pos, node) VALUES (?, ?, ?)`, ci, pos, node); err != nil {
				return fmt.Errorf("insert cycle %d: %w", ci, err)
			}
		}
	}

	for _, r := range records {
		// Checksums are uint64; store as hex text since SQLite integers are signed.
		var sum any
		if r.Checksum != 0 {
			sum = fmt.Sprintf("%016x", r.Checksum)
		}
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO files (source, destination, status, transforms, checksum, error) VALUES (?, ?, ?, ?, ?, ?)`,
			r.Source, nullable(r.Destination), r.Status, r.Transforms, sum, nullable(r.Error),
		)
		if err != nil {
			return fmt.Errorf("insert file %s: %w", r.Source, err)
		}
	}
	return nil
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
