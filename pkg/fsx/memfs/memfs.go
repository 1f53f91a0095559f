// Package memfs provides an in-memory fsx.Filesystem for tests.
//
// The in-memory implementation runs the same copy, delete and overwrite
// logic as osfs over a tree kept in process memory. Only owner permission
// bits are enforced, which makes permission failures reproducible in tests
// that run as root.
package memfs

import (
	"github.com/vvka-141/fsx/internal/files/filesystem"
	"github.com/vvka-141/fsx/pkg/fsx"
)

// Backend is the in-memory tree behind a memfs Filesystem.
// Use AddFile, AddDir and Symlink to seed fixtures.
type Backend = filesystem.MemoryBackend

// New returns an empty in-memory Filesystem and its backend.
func New(opts fsx.Options) (fsx.Filesystem, *Backend) {
	return filesystem.NewMemoryFileSystem(opts)
}
