package errors

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
)

// DiskFullError is a write that failed because the device ran out of space.
type DiskFullError struct {
	Op      string // write, put
	Path    string // database path, empty for in-memory stores
	wrapped error
}

func (e *DiskFullError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("disk full during %s on %s: %v", e.Op, e.Path, e.wrapped)
	}
	return fmt.Sprintf("disk full during %s: %v", e.Op, e.wrapped)
}

// Unwrap exposes both ErrDiskFull and the driver error.
func (e *DiskFullError) Unwrap() []error {
	return []error{ErrDiskFull, e.wrapped}
}

// NewDiskFullError creates a new DiskFullError.
func NewDiskFullError(op, path string, err error) *DiskFullError {
	return &DiskFullError{Op: op, Path: path, wrapped: err}
}

var diskFullPatterns = []string{
	"no space left on device",
	"disk full",
	"enospc",
	"not enough space",
	"insufficient disk space",
	"out of disk space",
	"database or disk is full",
}

// IsDiskFull reports whether err indicates a full device. It checks for
// ENOSPC and the messages Badger and SQLite produce for it.
func IsDiskFull(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDiskFull) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && errno == syscall.ENOSPC {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, p := range diskFullPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// WrapDiskFull wraps err as a DiskFullError when it indicates a full
// device and returns it unchanged otherwise.
func WrapDiskFull(err error, op, path string) error {
	if err == nil {
		return nil
	}
	var dfe *DiskFullError
	if errors.As(err, &dfe) {
		return err
	}
	if IsDiskFull(err) {
		return NewDiskFullError(op, path, err)
	}
	return err
}
