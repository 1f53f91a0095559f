package fsx

import "io/fs"

// Filesystem is the capability set shared by every fsx implementation.
//
// Predicates never fail: any underlying error resolves to false. All other
// operations return an *Error on failure.
type Filesystem interface {
	// Exists reports whether path exists. Symlinks are followed.
	Exists(path string) bool

	// IsFile reports whether path is a regular file. Symlinks are followed.
	IsFile(path string) bool

	// IsSymLink reports whether path itself is a symbolic link.
	IsSymLink(path string) bool

	// IsDirectory reports whether path is a directory. Symlinks are followed.
	IsDirectory(path string) bool

	// IsReadable reports whether the current process may read path.
	IsReadable(path string) bool

	// IsWritable reports whether the current process may write path.
	IsWritable(path string) bool

	// IsExecutable reports whether the current process may execute path.
	IsExecutable(path string) bool

	// GetParentDirectory derives the parent of path without touching the filesystem.
	// Returns "" when path has no meaningful parent.
	GetParentDirectory(path string) string

	// IsEmpty reports whether dir has no children.
	IsEmpty(dir string) (bool, error)

	// ListDirectory returns the sorted names of the immediate children of dir.
	ListDirectory(dir string) ([]string, error)

	// ReadFile returns the whole content of file.
	ReadFile(file string) ([]byte, error)

	// Chmod changes the permission bits of path. Returns false on failure.
	Chmod(path string, mode fs.FileMode) bool

	// CreateDirectory creates path with mode. Succeeds without changes when
	// path is already a directory.
	CreateDirectory(path string, mode fs.FileMode, recursive bool) error

	// CreateFile writes data to path, creating missing parent directories.
	// Returns the number of bytes written.
	CreateFile(path string, data []byte, overwrite bool) (int, error)

	// Delete removes path. Directories must be empty unless recursive is set.
	// Deleting a path that does not exist succeeds.
	Delete(path string, recursive bool) error

	// Rename moves src to dest.
	Rename(src, dest string, overwrite bool) error

	// Copy copies a file or, recursively, a directory from src to dest.
	Copy(src, dest string, overwrite bool) error
}

// MkdirAll creates path and any missing parents with DefaultDirMode.
func MkdirAll(fsys Filesystem, path string) error {
	return fsys.CreateDirectory(path, DefaultDirMode, true)
}
