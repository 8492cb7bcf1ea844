// Package file reads and overwrites files under the working directory.
package file

import (
	"github.com/Cyclone1070/codereview/internal/config"
)

// Accessor reads and writes files confined to a workspace root.
//
// Write overwrites whole files with no backup and no atomic replace: any file
// under the root, including tracked sources, can be clobbered by a single call.
// Nothing locks the files, so concurrent external edits to the same path give
// undefined results.
type Accessor struct {
	fs       fileSystem
	resolver pathResolver
	config   *config.Config
}

// NewAccessor creates an Accessor with injected dependencies.
func NewAccessor(fs fileSystem, resolver pathResolver, cfg *config.Config) *Accessor {
	return &Accessor{
		fs:       fs,
		resolver: resolver,
		config:   cfg,
	}
}
