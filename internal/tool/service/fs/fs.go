package fs

import (
	"io"
	"os"
)

// OSFileSystem implements filesystem operations using the local OS filesystem primitives.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat returns file info for a path (follows symlinks).
func (fs *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads at most limit bytes of the file. If the file holds more than
// limit bytes, ErrExceedsLimit is returned along with nothing read.
// A limit of 0 reads the whole file.
func (fs *OSFileSystem) ReadFile(path string, limit int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if limit <= 0 {
		return io.ReadAll(file)
	}

	// One byte past the limit tells us the file grew beyond it after Stat.
	content, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > limit {
		return nil, &LimitError{Path: path, Limit: limit}
	}
	return content, nil
}

// WriteFile replaces the file's contents in place. Existing files keep their
// permissions; new files are created with perm. The parent directory must exist.
func (fs *OSFileSystem) WriteFile(path string, content []byte, perm os.FileMode) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		return &WriteError{Path: path, Cause: err}
	}

	if err := file.Close(); err != nil {
		return &WriteError{Path: path, Cause: err}
	}
	return nil
}
