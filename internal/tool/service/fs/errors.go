package fs

import (
	"errors"
	"fmt"
)

// LimitError is returned when a file holds more bytes than the caller allows.
type LimitError struct {
	Path  string
	Limit int64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s exceeds %d bytes", e.Path, e.Limit)
}
func (e *LimitError) Unwrap() error { return ErrExceedsLimit }

// WriteError is returned when content cannot be flushed to an opened file.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}
func (e *WriteError) Unwrap() error { return e.Cause }

var ErrExceedsLimit = errors.New("file exceeds size limit")
