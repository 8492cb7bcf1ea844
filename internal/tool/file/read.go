package file

import (
	"context"
	"errors"
	iofs "io/fs"

	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/Cyclone1070/codereview/internal/tool/helper/content"
	"github.com/Cyclone1070/codereview/internal/tool/service/fs"
	"github.com/chainguard-dev/clog"
)

// Read returns the full text of the file at path. Missing files, directories,
// oversized or binary files, undecodable text, and paths outside the root all
// yield Err.
//
// Note: ctx is used for logging only - file I/O is synchronous.
func (a *Accessor) Read(ctx context.Context, path string) tool.Result {
	text, err := a.read(path)
	if err != nil {
		clog.FromContext(ctx).With("path", path).With("error", err).Debug("read failed")
		return tool.Err("Error reading file: " + err.Error())
	}
	return tool.Ok(text)
}

func (a *Accessor) read(path string) (string, error) {
	if path == "" {
		return "", ErrPathRequired
	}

	abs, err := a.resolver.Real(path)
	if err != nil {
		return "", &PathError{Path: path, Cause: err}
	}

	info, err := a.fs.Stat(abs)
	if errors.Is(err, iofs.ErrNotExist) {
		return "", &PathError{Path: path, Cause: ErrFileNotFound}
	}
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", &PathError{Path: path, Cause: ErrIsDirectory}
	}

	limit := a.config.Tools.MaxFileSize
	if info.Size() > limit {
		return "", &TooLargeError{Path: path, Size: info.Size(), Limit: limit}
	}

	data, err := a.fs.ReadFile(abs, limit)
	if err != nil {
		var limitErr *fs.LimitError
		if errors.As(err, &limitErr) {
			return "", &TooLargeError{Path: path, Size: limit + 1, Limit: limit}
		}
		return "", err
	}

	if err := checkText(path, data); err != nil {
		return "", err
	}
	return string(data), nil
}

// checkText applies the same text rules to reads and writes, so anything
// Write accepts can be read back.
func checkText(path string, data []byte) error {
	switch err := content.CheckText(data); {
	case errors.Is(err, content.ErrBinary):
		return &PathError{Path: path, Cause: ErrBinaryFile}
	case err != nil:
		return &PathError{Path: path, Cause: ErrInvalidEncoding}
	}
	return nil
}
