// Package osfs provides the fsx.Filesystem backed by the host operating system.
package osfs

import (
	"github.com/vvka-141/fsx/internal/files/filesystem"
	"github.com/vvka-141/fsx/pkg/fsx"
)

// New returns a Filesystem operating on the host filesystem.
func New(opts fsx.Options) fsx.Filesystem {
	return filesystem.NewOSFileSystem(opts)
}
