//go:build !unix

package filesystem

import (
	"io/fs"
	"os"
)

// access approximates access(2) from the owner permission bits.
func access(path string, mode AccessMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	want := fs.FileMode(mode) << 6
	if info.Mode().Perm()&want != want {
		return &os.PathError{Op: "access", Path: path, Err: fs.ErrPermission}
	}
	return nil
}
