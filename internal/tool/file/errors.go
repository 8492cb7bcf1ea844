package file

import (
	"errors"
	"fmt"
)

// TooLargeError is returned when a file or payload exceeds tools.max_file_size.
type TooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("%s is %d bytes, limit is %d", e.Path, e.Size, e.Limit)
}
func (e *TooLargeError) Unwrap() error { return ErrFileTooLarge }

// PathError ties a failure to the path the caller supplied.
type PathError struct {
	Path  string
	Cause error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%v: %s", e.Cause, e.Path)
}
func (e *PathError) Unwrap() error { return e.Cause }

var (
	ErrPathRequired    = errors.New("path is required")
	ErrFileTooLarge    = errors.New("file too large")
	ErrBinaryFile      = errors.New("file is binary")
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
	ErrIsDirectory     = errors.New("path is a directory")
	ErrFileNotFound    = errors.New("file not found")
	ErrParentMissing   = errors.New("parent directory does not exist")
)
