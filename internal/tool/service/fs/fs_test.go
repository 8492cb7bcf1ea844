package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))
	fsys := NewOSFileSystem()

	t.Run("no limit", func(t *testing.T) {
		got, err := fsys.ReadFile(path, 0)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(got))
	})

	t.Run("exact limit", func(t *testing.T) {
		got, err := fsys.ReadFile(path, 11)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(got))
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := fsys.ReadFile(path, 5)
		assert.ErrorIs(t, err, ErrExceedsLimit)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := fsys.ReadFile(filepath.Join(dir, "nope"), 0)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOSFileSystem()

	t.Run("creates new file", func(t *testing.T) {
		path := filepath.Join(dir, "new.txt")
		require.NoError(t, fsys.WriteFile(path, []byte("first"), 0o644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "first", string(got))
	})

	t.Run("truncates existing file", func(t *testing.T) {
		path := filepath.Join(dir, "existing.txt")
		require.NoError(t, os.WriteFile(path, []byte("a much longer original body"), 0o644))

		require.NoError(t, fsys.WriteFile(path, []byte("short"), 0o644))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "short", string(got))
	})

	t.Run("keeps existing permissions", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("POSIX permissions")
		}
		path := filepath.Join(dir, "script.sh")
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))

		require.NoError(t, fsys.WriteFile(path, []byte("#!/bin/sh\necho hi\n"), 0o644))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	})

	t.Run("missing parent fails", func(t *testing.T) {
		err := fsys.WriteFile(filepath.Join(dir, "no", "such", "dir.txt"), []byte("x"), 0o644)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
