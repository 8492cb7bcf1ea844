package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the slice of the OS the loader needs.
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

type osFileSystem struct{}

func (osFileSystem) UserHomeDir() (string, error)         { return os.UserHomeDir() }
func (osFileSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// Loader reads the dotfile at ~/.config/code-review/config.json.
type Loader struct {
	fs FileSystem
}

func NewLoader() *Loader {
	return &Loader{fs: osFileSystem{}}
}

// NewLoaderWithFS creates a Loader reading through fs.
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// DotfilePath returns the config location under home.
func DotfilePath(home string) string {
	return filepath.Join(home, ".config", "code-review", "config.json")
}

// Load starts from DefaultConfig and overlays the dotfile, if there is one.
// Keys present in the file win, explicit zero values included. Unknown keys
// are rejected so a misspelt setting does not silently fall back.
// A missing home directory or dotfile yields the defaults.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := l.fs.UserHomeDir()
	if err != nil {
		return cfg, nil
	}
	path := DotfilePath(home)

	data, err := l.fs.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the configuration from the real home directory.
func Load() (*Config, error) {
	return NewLoader().Load()
}
