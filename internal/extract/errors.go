package extract

import (
	"errors"
	"fmt"
)

var (
	ErrUsage    = errors.New("usage: carve <entry> <output-root>")
	ErrNotFound = errors.New("file not found")
)

// PermissionError reports a filesystem operation the process was not
// allowed to perform. It always ends the run.
type PermissionError struct {
	Op   string
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// AnalysisError reports that the dependency graph of Entry could not be
// built.
type AnalysisError struct {
	Entry string
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyze %s: %v", e.Entry, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
