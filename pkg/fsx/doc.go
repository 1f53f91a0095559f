// Package fsx defines the public contract of the fsx filesystem abstraction.
//
// A Filesystem wraps the host file and directory primitives behind one
// capability set. Every failing operation returns an *Error, so callers can
// handle all filesystem failures through a single type:
//
//	if err := fs.Delete("build", false); err != nil {
//	    if errors.Is(err, fsx.ErrNotEmpty) {
//	        // directory still has children
//	    }
//	    if errors.Is(err, fsx.ErrIO) {
//	        // any filesystem failure
//	    }
//	}
//
// Implementations:
//   - osfs.New: host operating system
//   - memfs.New: in-memory double for tests
//
// Mutating operations are not transactional. A recursive copy or delete that
// fails halfway leaves the already-processed part of the tree as it is.
package fsx
