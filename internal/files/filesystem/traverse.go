package filesystem

import (
	"path/filepath"

	"github.com/vvka-141/fsx/pkg/fsx"
)

// deleteEntry dispatches a delete on the kind of path.
// A symlink is always unlinked itself, even when it points at a directory.
func (f *Filesystem) deleteEntry(path string, recursive bool) error {
	if !f.IsSymLink(path) && f.IsDirectory(path) {
		if recursive {
			return f.deleteTree(path)
		}
		return f.deleteDirectory(path)
	}
	return f.unlink(path)
}

// deleteTree removes dir depth-first: every child in listing order, then dir.
// The first failure aborts the traversal.
func (f *Filesystem) deleteTree(dir string) error {
	names, err := f.ListDirectory(dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := f.deleteEntry(fsx.Join(dir, name), true); err != nil {
			return err
		}
	}
	return f.deleteDirectory(dir)
}

// deleteDirectory removes dir, which must be empty.
func (f *Filesystem) deleteDirectory(dir string) error {
	empty, err := f.IsEmpty(dir)
	if err != nil {
		return err
	}
	if !empty {
		return fsx.NewError(opDelete, dir, fsx.KindNotEmpty, nil)
	}

	f.logger.Verbose("rmdir %s", dir)
	if err := f.backend.Rmdir(dir); err != nil {
		return fsx.NewError(opDelete, dir, fsx.KindIOFailure, err)
	}
	return nil
}

// copyEntry dispatches a copy on the kind of src. Anything that is not a
// directory, including a missing src, takes the file branch.
func (f *Filesystem) copyEntry(src, dest string, overwrite bool) error {
	if f.IsDirectory(src) {
		return f.copyTree(src, dest, overwrite)
	}
	return f.copyFile(src, dest, overwrite)
}

// copyTree copies every child of src to the same name under dest.
// dest itself is never created up front; directories appear through the
// parent creation of nested file copies.
func (f *Filesystem) copyTree(src, dest string, overwrite bool) error {
	if err := f.verifyOverwrite(opCopy, dest, overwrite); err != nil {
		return err
	}

	names, err := f.ListDirectory(src)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := f.copyEntry(fsx.Join(src, name), fsx.Join(dest, name), overwrite); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies a single file. An existing directory dest receives the
// file under its own base name.
//
// Unlike CreateFile, an existing non-directory parent is not rejected here:
// the backend copy fails on it instead and the error is an I/O failure.
func (f *Filesystem) copyFile(src, dest string, overwrite bool) error {
	if !f.IsFile(src) {
		return fsx.NewError(opCopy, src, fsx.KindNotAFile, nil)
	}
	if f.IsDirectory(dest) {
		dest = fsx.Join(dest, filepath.Base(src))
	}
	if err := f.verifyOverwrite(opCopy, dest, overwrite); err != nil {
		return err
	}
	if parent := ParentDirectory(dest); parent != "" && !f.Exists(parent) {
		if err := f.CreateDirectory(parent, fsx.DefaultDirMode, true); err != nil {
			return err
		}
	}

	f.logger.Verbose("copy %s -> %s", src, dest)
	if err := f.backend.CopyFile(src, dest, fsx.DefaultFileMode); err != nil {
		return fsx.NewError(opCopy, src, fsx.KindIOFailure, err)
	}
	return nil
}
