package file

import "os"

// fileSystem defines the filesystem operations the accessor needs.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string, limit int64) ([]byte, error)
	WriteFile(path string, content []byte, perm os.FileMode) error
}

// pathResolver maps a caller path to its real location inside the workspace.
type pathResolver interface {
	Real(path string) (string, error)
}
