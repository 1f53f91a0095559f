package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// AccessMode is a bitmask of access(2) style permission checks.
type AccessMode uint32

const (
	AccessExecute AccessMode = 1 << iota
	AccessWrite
	AccessRead
)

// Backend is the set of primitive operations the engine builds on.
// Implementations return raw errors (typically *fs.PathError); the engine
// classifies them into *fsx.Error.
type Backend interface {
	// Stat returns file information, following symlinks.
	Stat(path string) (FileInfo, error)

	// Lstat returns file information without following a final symlink.
	Lstat(path string) (FileInfo, error)

	// Access checks whether the current process holds the requested permissions.
	Access(path string, mode AccessMode) error

	// ReadDirNames returns the names of the entries of a directory in no particular order.
	ReadDirNames(path string) ([]string, error)

	// ReadFile returns the whole content of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile creates or truncates path and writes data to it.
	WriteFile(path string, data []byte, perm fs.FileMode) (int, error)

	// Mkdir creates a directory, and its missing parents when recursive is set.
	Mkdir(path string, perm fs.FileMode, recursive bool) error

	// Remove unlinks a non-directory entry.
	Remove(path string) error

	// Rmdir removes an empty directory.
	Rmdir(path string) error

	// Rename moves src to dest, replacing dest when the OS allows it.
	Rename(src, dest string) error

	// CopyFile copies the content of src into dest, creating or truncating dest.
	CopyFile(src, dest string, perm fs.FileMode) error

	// Chmod changes the permission bits of path.
	Chmod(path string, mode fs.FileMode) error
}
