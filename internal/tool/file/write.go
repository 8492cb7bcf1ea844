package file

import (
	"context"
	"errors"
	"io/fs"

	"github.com/Cyclone1070/codereview/internal/tool"
	"github.com/chainguard-dev/clog"
)

// WriteSuccess is the payload of a successful Write.
const WriteSuccess = "File updated successfully"

// defaultPerm applies to files Write creates.
const defaultPerm fs.FileMode = 0o644

// Write replaces the whole file at path with body, creating it if missing.
// The parent directory must already exist. Content that Read would refuse
// (binary or not UTF-8) is rejected before the file is touched.
func (a *Accessor) Write(ctx context.Context, path, body string) tool.Result {
	if err := a.write(path, body); err != nil {
		clog.FromContext(ctx).With("path", path).With("error", err).Debug("write failed")
		return tool.Err("Error writing file: " + err.Error())
	}
	clog.FromContext(ctx).With("path", path).With("bytes", len(body)).Info("file written")
	return tool.Ok(WriteSuccess)
}

func (a *Accessor) write(path, body string) error {
	if path == "" {
		return ErrPathRequired
	}

	limit := a.config.Tools.MaxFileSize
	if int64(len(body)) > limit {
		return &TooLargeError{Path: path, Size: int64(len(body)), Limit: limit}
	}
	if err := checkText(path, []byte(body)); err != nil {
		return err
	}

	abs, err := a.resolver.Real(path)
	if err != nil {
		return &PathError{Path: path, Cause: err}
	}

	info, err := a.fs.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return &PathError{Path: path, Cause: ErrIsDirectory}
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return err
	}

	err = a.fs.WriteFile(abs, []byte(body), defaultPerm)
	if errors.Is(err, fs.ErrNotExist) {
		return &PathError{Path: path, Cause: ErrParentMissing}
	}
	return err
}
