package treesync

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// writeAtomic writes data to name through a temp file in the same
// directory, then renames it into place. A reader never sees a partially
// written destination.
func writeAtomic(fsys billy.Filesystem, name string, data []byte, perm fs.FileMode) error {
	tmp, err := fsys.TempFile(filepath.Dir(name), ".carve-sync-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("close temp: %w", err)
	}

	if ch, ok := fsys.(billy.Change); ok {
		_ = ch.Chmod(tmpName, perm) // best-effort permission sync
	}

	if err := fsys.Rename(tmpName, name); err != nil {
		_ = fsys.Remove(tmpName) // best-effort cleanup
		return fmt.Errorf("rename temp to %s: %w", name, err)
	}
	return nil
}
