package path

import (
	"errors"
	"fmt"
)

var (
	ErrOutsideWorkspace    = errors.New("path is outside workspace root")
	ErrWorkspaceRootNotSet = errors.New("workspace root not set")
	ErrNotADirectory       = errors.New("not a directory")
)

// WorkspaceRootError is returned when the repository root cannot be used.
type WorkspaceRootError struct {
	Root  string
	Cause error
}

func (e *WorkspaceRootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}

func (e *WorkspaceRootError) Unwrap() error { return e.Cause }

// EscapeError reports a path that leaves the root. Symlink is set when the
// path is lexically inside but a link on the way points elsewhere.
type EscapeError struct {
	Path    string
	Symlink bool
}

func (e *EscapeError) Error() string {
	if e.Symlink {
		return ErrOutsideWorkspace.Error() + " (via symlink)"
	}
	return ErrOutsideWorkspace.Error()
}

func (e *EscapeError) Unwrap() error { return ErrOutsideWorkspace }
