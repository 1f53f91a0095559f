package filesystem

import (
	"io"
	"io/fs"
	"os"
)

// OSBackend implements Backend for the host operating system.
type OSBackend struct{}

// NewOSBackend creates a new OS backend.
func NewOSBackend() *OSBackend {
	return &OSBackend{}
}

func (b *OSBackend) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

func (b *OSBackend) Lstat(path string) (FileInfo, error) {
	return os.Lstat(path)
}

func (b *OSBackend) Access(path string, mode AccessMode) error {
	return access(path, mode)
}

func (b *OSBackend) ReadDirNames(path string) ([]string, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	return dir.Readdirnames(-1)
}

func (b *OSBackend) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (b *OSBackend) WriteFile(path string, data []byte, perm fs.FileMode) (n int, err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return f.Write(data)
}

func (b *OSBackend) Mkdir(path string, perm fs.FileMode, recursive bool) error {
	if recursive {
		return os.MkdirAll(path, perm)
	}
	return os.Mkdir(path, perm)
}

func (b *OSBackend) Remove(path string) error {
	return os.Remove(path)
}

func (b *OSBackend) Rmdir(path string) error {
	return os.Remove(path)
}

func (b *OSBackend) Rename(src, dest string) error {
	return os.Rename(src, dest)
}

func (b *OSBackend) CopyFile(src, dest string, perm fs.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

func (b *OSBackend) Chmod(path string, mode fs.FileMode) error {
	return os.Chmod(path, mode)
}

var _ Backend = (*OSBackend)(nil)
