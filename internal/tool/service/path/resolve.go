package path

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Resolver provides path resolution within a workspace boundary.
type Resolver struct {
	workspaceRoot string
}

// NewResolver creates a new path resolver for the given workspace.
// The root should already be canonical (see CanonicaliseRoot).
func NewResolver(workspaceRoot string) *Resolver {
	return &Resolver{
		workspaceRoot: workspaceRoot,
	}
}

// Root returns the workspace root the resolver was built with.
func (r *Resolver) Root() string {
	return r.workspaceRoot
}

// CanonicaliseRoot canonicalises a workspace root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &WorkspaceRootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Abs resolves any path to absolute and validates it is within the workspace boundary.
// It cleans the path and ensures it does not escape the workspace root lexically.
// Symlinks are not followed; use Real for that.
func (r *Resolver) Abs(path string) (string, error) {
	if r.workspaceRoot == "" {
		return "", ErrWorkspaceRootNotSet
	}

	var abs string
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else {
		abs = filepath.Clean(filepath.Join(r.workspaceRoot, path))
	}

	if !r.contains(abs) {
		return "", &EscapeError{Path: path}
	}

	return abs, nil
}

// Real resolves path like Abs and then follows symlinks in the deepest
// existing ancestor. A path whose real location leaves the workspace is
// rejected with an *EscapeError. The returned path is the real location;
// components that do not exist yet are appended unchanged.
func (r *Resolver) Real(path string) (string, error) {
	abs, err := r.Abs(path)
	if err != nil {
		return "", err
	}

	existing := abs
	var rest []string
	for {
		_, err := os.Lstat(existing)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			break
		}
		rest = append([]string{filepath.Base(existing)}, rest...)
		existing = parent
	}

	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}
	real := filepath.Join(append([]string{resolved}, rest...)...)

	if !r.contains(real) {
		return "", &EscapeError{Path: path, Symlink: true}
	}
	return real, nil
}

// Rel resolves any path to relative to the workspace root and validates it is within the boundary.
func (r *Resolver) Rel(path string) (string, error) {
	abs, err := r.Abs(path)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(r.workspaceRoot, abs)
	if err != nil {
		return "", ErrOutsideWorkspace
	}

	if rel == "." {
		return "", nil
	}

	return filepath.ToSlash(rel), nil
}

// contains reports whether abs is the root itself or a descendant of it.
func (r *Resolver) contains(abs string) bool {
	root := r.workspaceRoot
	if abs == root {
		return true
	}
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(abs, root)
}
