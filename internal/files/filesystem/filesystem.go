package filesystem

import (
	"errors"
	"io/fs"
	"sort"
	"syscall"

	"github.com/vvka-141/fsx/internal/logging"
	"github.com/vvka-141/fsx/pkg/fsx"
)

const (
	opList   = "list"
	opRead   = "read"
	opMkdir  = "mkdir"
	opCreate = "create"
	opDelete = "delete"
	opRename = "rename"
	opCopy   = "copy"
)

// Filesystem implements fsx.Filesystem on top of a Backend.
// It holds no state besides its collaborators and is safe for concurrent use
// whenever the backend is.
type Filesystem struct {
	backend Backend
	logger  fsx.Logger
}

// New creates a Filesystem over backend.
// Panics if backend is nil.
func New(backend Backend, opts fsx.Options) *Filesystem {
	if backend == nil {
		panic("backend cannot be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Filesystem{backend: backend, logger: logger}
}

// NewOSFileSystem creates a Filesystem backed by the host operating system.
func NewOSFileSystem(opts fsx.Options) *Filesystem {
	return New(NewOSBackend(), opts)
}

// NewMemoryFileSystem creates a Filesystem over a fresh in-memory backend.
// The backend is returned for seeding test fixtures.
func NewMemoryFileSystem(opts fsx.Options) (*Filesystem, *MemoryBackend) {
	backend := NewMemoryBackend()
	return New(backend, opts), backend
}

// Backend returns the primitive backend f operates on.
func (f *Filesystem) Backend() Backend {
	return f.backend
}

// Exists reports whether path exists, following symlinks.
func (f *Filesystem) Exists(path string) bool {
	_, err := f.backend.Stat(path)
	return err == nil
}

// IsFile reports whether path is a regular file, following symlinks.
func (f *Filesystem) IsFile(path string) bool {
	info, err := f.backend.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsSymLink reports whether path itself is a symlink, dangling or not.
func (f *Filesystem) IsSymLink(path string) bool {
	info, err := f.backend.Lstat(path)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

// IsDirectory reports whether path is a directory, following symlinks.
func (f *Filesystem) IsDirectory(path string) bool {
	info, err := f.backend.Stat(path)
	return err == nil && info.IsDir()
}

// IsReadable reports whether the process may read path.
func (f *Filesystem) IsReadable(path string) bool {
	return f.backend.Access(path, AccessRead) == nil
}

// IsWritable reports whether the process may write path.
func (f *Filesystem) IsWritable(path string) bool {
	return f.backend.Access(path, AccessWrite) == nil
}

// IsExecutable reports whether the process may execute or search path.
func (f *Filesystem) IsExecutable(path string) bool {
	return f.backend.Access(path, AccessExecute) == nil
}

// GetParentDirectory derives the parent of path without touching the filesystem.
func (f *Filesystem) GetParentDirectory(path string) string {
	return ParentDirectory(path)
}

// IsEmpty reports whether dir lists no entries.
func (f *Filesystem) IsEmpty(dir string) (bool, error) {
	names, err := f.ListDirectory(dir)
	if err != nil {
		return false, err
	}
	return len(names) == 0, nil
}

// ListDirectory returns the entry names of dir in byte-wise order.
func (f *Filesystem) ListDirectory(dir string) ([]string, error) {
	if !f.IsDirectory(dir) {
		return nil, fsx.NewError(opList, dir, fsx.KindNotADirectory, nil)
	}

	names, err := f.backend.ReadDirNames(dir)
	if err != nil {
		return nil, fsx.NewError(opList, dir, fsx.KindIOFailure, err)
	}

	listing := make([]string, 0, len(names))
	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}
		listing = append(listing, name)
	}
	sort.Strings(listing)

	return listing, nil
}

// ReadFile returns the whole content of file.
func (f *Filesystem) ReadFile(file string) ([]byte, error) {
	if !f.IsFile(file) {
		return nil, fsx.NewError(opRead, file, fsx.KindNotAFile, nil)
	}

	data, err := f.backend.ReadFile(file)
	if err != nil {
		return nil, fsx.NewError(opRead, file, fsx.KindIOFailure, err)
	}
	return data, nil
}

// Chmod sets the permission bits of path and reports whether it succeeded.
func (f *Filesystem) Chmod(path string, mode fs.FileMode) bool {
	if err := f.backend.Chmod(path, mode); err != nil {
		f.logger.Verbose("chmod %s %o failed: %v", path, mode, err)
		return false
	}
	return true
}

// CreateDirectory creates path unless it already is a directory.
func (f *Filesystem) CreateDirectory(path string, mode fs.FileMode, recursive bool) error {
	if f.IsDirectory(path) {
		return nil
	}
	if f.Exists(path) {
		return fsx.NewError(opMkdir, path, fsx.KindPathConflict, nil)
	}

	f.logger.Verbose("mkdir %s (mode %o, recursive %t)", path, mode, recursive)
	if err := f.backend.Mkdir(path, mode, recursive); err != nil {
		return fsx.NewError(opMkdir, path, fsx.KindIOFailure, err)
	}
	return nil
}

// CreateFile writes data to path, creating missing parent directories,
// and returns the number of bytes written.
func (f *Filesystem) CreateFile(path string, data []byte, overwrite bool) (int, error) {
	if err := f.verifyOverwrite(opCreate, path, overwrite); err != nil {
		return 0, err
	}
	if parent := ParentDirectory(path); parent != "" {
		if err := f.CreateDirectory(parent, fsx.DefaultDirMode, true); err != nil {
			return 0, err
		}
	}

	f.logger.Verbose("write %s (%d bytes)", path, len(data))
	n, err := f.backend.WriteFile(path, data, fsx.DefaultFileMode)
	if err != nil {
		return n, fsx.NewError(opCreate, path, fsx.KindIOFailure, err)
	}
	return n, nil
}

// Delete removes path. Directories must be empty unless recursive is set.
func (f *Filesystem) Delete(path string, recursive bool) error {
	return f.deleteEntry(path, recursive)
}

// Rename moves src to dest.
func (f *Filesystem) Rename(src, dest string, overwrite bool) error {
	if err := f.verifyOverwrite(opRename, dest, overwrite); err != nil {
		return err
	}

	f.logger.Verbose("rename %s -> %s", src, dest)
	if err := f.backend.Rename(src, dest); err != nil {
		return fsx.NewError(opRename, src, fsx.KindIOFailure, err)
	}
	return nil
}

// Copy copies a file, or a directory tree file by file.
func (f *Filesystem) Copy(src, dest string, overwrite bool) error {
	return f.copyEntry(src, dest, overwrite)
}

// verifyOverwrite fails when overwrite is disabled and target exists in any form.
// It never touches target.
func (f *Filesystem) verifyOverwrite(op, target string, overwrite bool) error {
	if overwrite {
		return nil
	}
	if f.Exists(target) || f.IsSymLink(target) {
		return fsx.NewError(op, target, fsx.KindAlreadyExists, nil)
	}
	return nil
}

// unlink removes a non-directory entry. A missing entry counts as removed,
// including one whose parent is a file.
func (f *Filesystem) unlink(path string) error {
	f.logger.Verbose("unlink %s", path)
	err := f.backend.Remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if errors.Is(err, syscall.ENOTDIR) && !f.Exists(path) && !f.IsSymLink(path) {
		return nil
	}
	return fsx.NewError(opDelete, path, fsx.KindIOFailure, err)
}

var _ fsx.Filesystem = (*Filesystem)(nil)
