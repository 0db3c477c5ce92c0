//go:build unix

package extract

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"
)

// IsPermission reports whether err, or anything it wraps, is an access
// failure (EPERM or EACCES).
func IsPermission(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) || errors.Is(err, fs.ErrPermission)
}
