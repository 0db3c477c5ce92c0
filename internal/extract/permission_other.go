//go:build !unix

package extract

import (
	"errors"
	"io/fs"
)

// IsPermission reports whether err, or anything it wraps, is an access
// failure.
func IsPermission(err error) bool {
	return err != nil && errors.Is(err, fs.ErrPermission)
}
