package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentic-research/carve/internal/extract"
)

func TestExitError(t *testing.T) {
	perm := &extract.PermissionError{Op: "clean", Path: "/out/x", Err: fs.ErrPermission}

	assert.NoError(t, exitError(nil))
	assert.NoError(t, exitError(fmt.Errorf("%w: /x.js", extract.ErrNotFound)))
	assert.NoError(t, exitError(&extract.AnalysisError{Entry: "/x.js", Err: errors.New("bad")}))
	assert.Equal(t, perm, exitError(perm))
	assert.ErrorIs(t, exitError(extract.ErrUsage), extract.ErrUsage)
}
