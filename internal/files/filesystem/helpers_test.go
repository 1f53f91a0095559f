package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvka-141/fsx/pkg/fsx"
)

// fixture is the tree every contract test starts from:
//
//	test.txt                   "test"
//	subDirectory/subFile2.txt  "subFile2"  (created first)
//	subDirectory/subFile.txt   "subFile"
type fixture struct {
	t    *testing.T
	fs   *Filesystem
	root string

	symlink     func(target, link string)
	chmod       func(path string, mode fs.FileMode)
	canDenyPerm bool
}

const (
	testFile         = "test.txt"
	testFileData     = "test"
	testDirectory    = "subDirectory"
	testSubFile      = "subFile.txt"
	testSubFileData  = "subFile"
	testSubFile2     = "subFile2.txt"
	testSubFileData2 = "subFile2"
)

// p returns the fixture path of the slash-separated relative path rel.
func (fx *fixture) p(rel string) string {
	if rel == "" {
		return fx.root
	}
	return fx.root + "/" + rel
}

// deny sets mode on rel and restores 0755 when the test ends.
// Skips the test when the backend cannot enforce permissions.
func (fx *fixture) deny(rel string, mode fs.FileMode) {
	fx.t.Helper()
	if !fx.canDenyPerm {
		fx.t.Skip("permission bits are not enforced for this user")
	}
	fx.chmod(fx.p(rel), mode)
	fx.t.Cleanup(func() { fx.chmod(fx.p(rel), 0755) })
}

func newOSFixture(t *testing.T) *fixture {
	t.Helper()
	root := filepath.ToSlash(t.TempDir())

	write := func(rel, content string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write(testFile, testFileData)
	write(testDirectory+"/"+testSubFile2, testSubFileData2)
	write(testDirectory+"/"+testSubFile, testSubFileData)

	return &fixture{
		t:    t,
		fs:   NewOSFileSystem(fsx.Options{}),
		root: root,
		symlink: func(target, link string) {
			require.NoError(t, os.Symlink(target, link))
		},
		chmod: func(path string, mode fs.FileMode) {
			require.NoError(t, os.Chmod(path, mode))
		},
		canDenyPerm: runtime.GOOS != "windows" && os.Geteuid() != 0,
	}
}

func newMemoryFixture(t *testing.T) *fixture {
	t.Helper()
	fsys, backend := NewMemoryFileSystem(fsx.Options{})
	root := "/baseDirectory"

	backend.AddFile(root+"/"+testFile, testFileData)
	backend.AddFile(root+"/"+testDirectory+"/"+testSubFile2, testSubFileData2)
	backend.AddFile(root+"/"+testDirectory+"/"+testSubFile, testSubFileData)

	return &fixture{
		t:    t,
		fs:   fsys,
		root: root,
		symlink: func(target, link string) {
			require.NoError(t, backend.Symlink(target, link))
		},
		chmod: func(path string, mode fs.FileMode) {
			require.NoError(t, backend.Chmod(path, mode))
		},
		canDenyPerm: true,
	}
}

// forEachBackend runs fn once against the host filesystem and once against memory.
func forEachBackend(t *testing.T, fn func(t *testing.T, fx *fixture)) {
	t.Helper()
	t.Run("os", func(t *testing.T) { fn(t, newOSFixture(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, newMemoryFixture(t)) })
}

// requireKind asserts err is an *fsx.Error of the given kind.
func requireKind(t *testing.T, err error, kind fsx.Kind) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, fsx.ErrIO)
	got, ok := fsx.KindOf(err)
	require.True(t, ok, "expected *fsx.Error, got %T", err)
	require.Equal(t, kind, got, "unexpected kind for error %v", err)
}
