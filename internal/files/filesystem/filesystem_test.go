package filesystem

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vvka-141/fsx/internal/logging"
	"github.com/vvka-141/fsx/pkg/fsx"
)

func TestNew_NilBackend(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil backend")
		}
	}()
	New(nil, fsx.Options{})
}

func TestExists(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.True(t, fx.fs.Exists(fx.p(testFile)))
		require.True(t, fx.fs.Exists(fx.p(testDirectory)))
		require.False(t, fx.fs.Exists(fx.p("missing")))
	})
}

func TestIsFileAndIsDirectory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.True(t, fx.fs.IsFile(fx.p(testFile)))
		require.False(t, fx.fs.IsFile(fx.p(testDirectory)))
		require.False(t, fx.fs.IsFile(fx.p("missing")))

		require.True(t, fx.fs.IsDirectory(fx.p(testDirectory)))
		require.False(t, fx.fs.IsDirectory(fx.p(testFile)))
		require.False(t, fx.fs.IsDirectory(fx.p("missing")))
	})
}

func TestIsSymLink(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		fx.symlink(fx.p(testDirectory), fx.p("dirLink"))
		fx.symlink(fx.p("nowhere"), fx.p("dangling"))

		require.True(t, fx.fs.IsSymLink(fx.p("dirLink")))
		require.True(t, fx.fs.IsDirectory(fx.p("dirLink")), "IsDirectory follows symlinks")
		require.False(t, fx.fs.IsSymLink(fx.p(testDirectory)))
		require.False(t, fx.fs.IsSymLink(fx.p(testFile)))

		require.True(t, fx.fs.IsSymLink(fx.p("dangling")))
		require.False(t, fx.fs.Exists(fx.p("dangling")), "Exists follows symlinks")
	})
}

func TestAccessPredicates(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.True(t, fx.fs.IsReadable(fx.p(testFile)))
		require.True(t, fx.fs.IsWritable(fx.p(testFile)))
		require.False(t, fx.fs.IsExecutable(fx.p(testFile)))
		require.True(t, fx.fs.IsReadable(fx.p(testDirectory)))

		require.False(t, fx.fs.IsReadable(fx.p("missing")))
		require.False(t, fx.fs.IsWritable(fx.p("missing")))
		require.False(t, fx.fs.IsExecutable(fx.p("missing")))

		require.True(t, fx.fs.Chmod(fx.p(testFile), 0777))
		require.True(t, fx.fs.IsExecutable(fx.p(testFile)))
	})
}

func TestAccessPredicates_Denied(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		fx.deny(testFile, 0000)
		require.False(t, fx.fs.IsReadable(fx.p(testFile)))
		require.False(t, fx.fs.IsWritable(fx.p(testFile)))

		fx.deny(testDirectory, 0000)
		require.False(t, fx.fs.IsReadable(fx.p(testDirectory)))
		require.False(t, fx.fs.IsWritable(fx.p(testDirectory)))
	})
}

func TestChmod_MissingPath(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.False(t, fx.fs.Chmod(fx.p("missing"), 0644))
	})
}

func TestGetParentDirectory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.Equal(t, fx.p(testDirectory), fx.fs.GetParentDirectory(fx.p(testDirectory+"/"+testSubFile)))
		require.Equal(t, fx.root, fx.fs.GetParentDirectory(fx.p(testFile)))
		require.Equal(t, "", fx.fs.GetParentDirectory("orphan"))
	})
}

func TestIsEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.NoError(t, fx.fs.CreateDirectory(fx.p("newDirectory"), fsx.DefaultDirMode, true))

		empty, err := fx.fs.IsEmpty(fx.p("newDirectory"))
		require.NoError(t, err)
		require.True(t, empty)

		empty, err = fx.fs.IsEmpty(fx.p(testDirectory))
		require.NoError(t, err)
		require.False(t, empty)

		_, err = fx.fs.IsEmpty(fx.p(testFile))
		requireKind(t, err, fsx.KindNotADirectory)
	})
}

func TestListDirectory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		names, err := fx.fs.ListDirectory(fx.p(testDirectory))
		require.NoError(t, err)
		require.Equal(t, []string{testSubFile, testSubFile2}, names)

		names, err = fx.fs.ListDirectory(fx.root)
		require.NoError(t, err)
		require.Equal(t, []string{testDirectory, testFile}, names)
	})
}

func TestListDirectory_Empty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.NoError(t, fx.fs.CreateDirectory(fx.p("emptyDirectory"), fsx.DefaultDirMode, false))

		names, err := fx.fs.ListDirectory(fx.p("emptyDirectory"))
		require.NoError(t, err)
		require.Empty(t, names)
		require.NotNil(t, names)
	})
}

func TestListDirectory_NotADirectory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		_, err := fx.fs.ListDirectory(fx.p(testFile))
		requireKind(t, err, fsx.KindNotADirectory)

		_, err = fx.fs.ListDirectory(fx.p("nonExistingDirectory"))
		requireKind(t, err, fsx.KindNotADirectory)
	})
}

func TestListDirectory_Unreadable(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		fx.deny(testDirectory, 0000)

		_, err := fx.fs.ListDirectory(fx.p(testDirectory))
		requireKind(t, err, fsx.KindIOFailure)
	})
}

func TestReadFile(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		data, err := fx.fs.ReadFile(fx.p(testFile))
		require.NoError(t, err)
		require.Equal(t, testFileData, string(data))
	})
}

func TestReadFile_NotAFile(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		_, err := fx.fs.ReadFile(fx.p("nonExistingFile.txt"))
		requireKind(t, err, fsx.KindNotAFile)

		_, err = fx.fs.ReadFile(fx.p(testDirectory))
		requireKind(t, err, fsx.KindNotAFile)
	})
}

func TestReadFile_Unreadable(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		fx.deny(testFile, 0000)

		_, err := fx.fs.ReadFile(fx.p(testFile))
		requireKind(t, err, fsx.KindIOFailure)
	})
}

func TestChmod_DeniesListing(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		if !fx.canDenyPerm {
			t.Skip("permission bits are not enforced for this user")
		}
		require.True(t, fx.fs.Chmod(fx.p(testDirectory), 0000))
		t.Cleanup(func() { fx.fs.Chmod(fx.p(testDirectory), 0755) })

		_, err := fx.fs.ListDirectory(fx.p(testDirectory))
		requireKind(t, err, fsx.KindIOFailure)
	})
}

func TestCreateDirectory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.NoError(t, fx.fs.CreateDirectory(fx.p(testDirectory), fsx.DefaultDirMode, true), "existing directory is a no-op")

		require.False(t, fx.fs.Exists(fx.p("newDirectory")))
		require.NoError(t, fx.fs.CreateDirectory(fx.p("newDirectory"), fsx.DefaultDirMode, true))
		require.True(t, fx.fs.IsDirectory(fx.p("newDirectory")))
	})
}

func TestCreateDirectory_Nested(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.NoError(t, fsx.MkdirAll(fx.fs, fx.p("newDirectory/subDirectory/anotherDirectory")))

		require.True(t, fx.fs.IsDirectory(fx.p("newDirectory")))
		require.True(t, fx.fs.IsDirectory(fx.p("newDirectory/subDirectory")))
		require.True(t, fx.fs.IsDirectory(fx.p("newDirectory/subDirectory/anotherDirectory")))
	})
}

func TestCreateDirectory_NonRecursiveMissingParent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		err := fx.fs.CreateDirectory(fx.p("missing/child"), fsx.DefaultDirMode, false)
		requireKind(t, err, fsx.KindIOFailure)
		require.False(t, fx.fs.Exists(fx.p("missing")))
	})
}

func TestCreateDirectory_PathConflict(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		err := fx.fs.CreateDirectory(fx.p(testFile), fsx.DefaultDirMode, true)
		requireKind(t, err, fsx.KindPathConflict)
	})
}

func TestCreateDirectory_Fails(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		fx.deny(testDirectory, 0000)

		err := fx.fs.CreateDirectory(fx.p(testDirectory+"/newDirectory"), fsx.DefaultDirMode, true)
		requireKind(t, err, fsx.KindIOFailure)
	})
}

func TestCreateFile(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.False(t, fx.fs.Exists(fx.p("newFile.txt")))

		n, err := fx.fs.CreateFile(fx.p("newFile.txt"), []byte("newContent"), false)
		require.NoError(t, err)
		require.Equal(t, len("newContent"), n)
		require.True(t, fx.fs.IsFile(fx.p("newFile.txt")))
	})
}

func TestCreateFile_EmptyContent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		n, err := fx.fs.CreateFile(fx.p("empty.txt"), nil, false)
		require.NoError(t, err)
		require.Zero(t, n)

		data, err := fx.fs.ReadFile(fx.p("empty.txt"))
		require.NoError(t, err)
		require.Empty(t, data)
	})
}

func TestCreateFile_InMissingDirectories(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		path := fx.p("newDirectory/subDirectory/newFile.txt")
		require.False(t, fx.fs.Exists(path))

		_, err := fx.fs.CreateFile(path, []byte("newContent"), false)
		require.NoError(t, err)
		require.True(t, fx.fs.IsFile(path))
		require.True(t, fx.fs.IsDirectory(fx.p("newDirectory/subDirectory")))
	})
}

func TestCreateFile_OverwriteGate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		_, err := fx.fs.CreateFile(fx.p(testFile), []byte("content"), false)
		requireKind(t, err, fsx.KindAlreadyExists)

		data, err := fx.fs.ReadFile(fx.p(testFile))
		require.NoError(t, err)
		require.Equal(t, testFileData, string(data), "failed overwrite must not touch the target")

		_, err = fx.fs.CreateFile(fx.p(testFile), []byte("content"), true)
		require.NoError(t, err)

		data, err = fx.fs.ReadFile(fx.p(testFile))
		require.NoError(t, err)
		require.Equal(t, "content", string(data))
	})
}

func TestCreateFile_ExistingDirectoryTarget(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		_, err := fx.fs.CreateFile(fx.p(testDirectory), []byte("x"), false)
		requireKind(t, err, fsx.KindAlreadyExists)

		_, err = fx.fs.CreateFile(fx.p(testDirectory), []byte("x"), true)
		requireKind(t, err, fsx.KindIOFailure)
	})
}

func TestCreateFile_ParentIsNotADirectory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		_, err := fx.fs.CreateFile(fx.p(testFile+"/newFile.txt"), []byte("newContent"), false)
		requireKind(t, err, fsx.KindPathConflict)
	})
}

func TestCreateFile_Fails(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		fx.deny(testDirectory, 0000)

		_, err := fx.fs.CreateFile(fx.p(testDirectory+"/newFile.txt"), []byte("newContent"), false)
		requireKind(t, err, fsx.KindIOFailure)
	})
}

func TestDelete_EmptyDirectory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.NoError(t, fx.fs.CreateDirectory(fx.p("newDirectory"), fsx.DefaultDirMode, true))
		require.True(t, fx.fs.Exists(fx.p("newDirectory")))

		require.NoError(t, fx.fs.Delete(fx.p("newDirectory"), false))
		require.False(t, fx.fs.Exists(fx.p("newDirectory")))
	})
}

func TestDelete_Recursive(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		_, err := fx.fs.CreateFile(fx.p(testDirectory+"/deeper/deepest/file.txt"), []byte("x"), false)
		require.NoError(t, err)

		require.NoError(t, fx.fs.Delete(fx.p(testDirectory), true))
		require.False(t, fx.fs.Exists(fx.p(testDirectory)))
		require.True(t, fx.fs.Exists(fx.p(testFile)))
	})
}

func TestDelete_NonRecursiveRefusesNonEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		err := fx.fs.Delete(fx.p(testDirectory), false)
		requireKind(t, err, fsx.KindNotEmpty)
		require.True(t, fx.fs.IsFile(fx.p(testDirectory+"/"+testSubFile)))
	})
}

func TestDelete_DirectoryFails(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.NoError(t, fsx.MkdirAll(fx.fs, fx.p("newDirectory/test")))
		fx.deny("newDirectory", 0000)

		err := fx.fs.Delete(fx.p("newDirectory/test"), false)
		requireKind(t, err, fsx.KindIOFailure)
	})
}

func TestDelete_File(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.True(t, fx.fs.Exists(fx.p(testFile)))
		require.NoError(t, fx.fs.Delete(fx.p(testFile), false))
		require.False(t, fx.fs.Exists(fx.p(testFile)))
	})
}

func TestDelete_MissingFileSucceeds(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		for _, rel := range []string{"nonExisting.txt", "missing/deeper/file", testFile} {
			require.NoError(t, fx.fs.Delete(fx.p(rel), false))
			require.NoError(t, fx.fs.Delete(fx.p(rel), true))
		}
	})
}

func TestDelete_MissingBelowFileSucceeds(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		for _, rel := range []string{testFile + "/missing.txt", testFile + "/missing/deeper"} {
			require.False(t, fx.fs.Exists(fx.p(rel)))
			require.NoError(t, fx.fs.Delete(fx.p(rel), false))
			require.NoError(t, fx.fs.Delete(fx.p(rel), true))
		}
		require.True(t, fx.fs.IsFile(fx.p(testFile)))
	})
}

func TestDelete_FileFails(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		fx.deny(testDirectory, 0000)

		err := fx.fs.Delete(fx.p(testDirectory+"/"+testSubFile), false)
		requireKind(t, err, fsx.KindIOFailure)
	})
}

func TestDelete_SymlinkToDirectoryRemovesLinkOnly(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		fx.symlink(fx.p(testDirectory), fx.p("dirLink"))

		require.NoError(t, fx.fs.Delete(fx.p("dirLink"), true))
		require.False(t, fx.fs.IsSymLink(fx.p("dirLink")))
		require.True(t, fx.fs.IsFile(fx.p(testDirectory+"/"+testSubFile)))
	})
}

func TestRename(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.False(t, fx.fs.Exists(fx.p("renamedFile.txt")))

		require.NoError(t, fx.fs.Rename(fx.p(testFile), fx.p("renamedFile.txt"), false))
		require.False(t, fx.fs.Exists(fx.p(testFile)))
		require.True(t, fx.fs.Exists(fx.p("renamedFile.txt")))
	})
}

func TestRename_Directory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		require.NoError(t, fx.fs.Rename(fx.p(testDirectory), fx.p("moved"), false))

		names, err := fx.fs.ListDirectory(fx.p("moved"))
		require.NoError(t, err)
		require.Equal(t, []string{testSubFile, testSubFile2}, names)
	})
}

func TestRename_OverwriteGate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		dest := fx.p(testDirectory + "/" + testSubFile)

		err := fx.fs.Rename(fx.p(testFile), dest, false)
		requireKind(t, err, fsx.KindAlreadyExists)
		require.True(t, fx.fs.Exists(fx.p(testFile)))

		require.NoError(t, fx.fs.Rename(fx.p(testFile), dest, true))
		data, err := fx.fs.ReadFile(dest)
		require.NoError(t, err)
		require.Equal(t, testFileData, string(data))
	})
}

func TestRename_MissingSource(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		err := fx.fs.Rename(fx.p("missing"), fx.p("other"), false)
		requireKind(t, err, fsx.KindIOFailure)
	})
}

func TestRename_Fails(t *testing.T) {
	forEachBackend(t, func(t *testing.T, fx *fixture) {
		fx.deny(testDirectory, 0000)

		err := fx.fs.Rename(fx.p(testFile), fx.p(testDirectory+"/"+testSubFile), true)
		requireKind(t, err, fsx.KindIOFailure)
	})
}

func TestLogger_TracesMutations(t *testing.T) {
	var buf bytes.Buffer
	fsys, _ := NewMemoryFileSystem(fsx.Options{Logger: logging.NewConsoleLoggerTo(&buf, true)})

	_, err := fsys.CreateFile("/a/b.txt", []byte("hi"), false)
	require.NoError(t, err)
	require.NoError(t, fsys.Delete("/a", true))

	out := buf.String()
	for _, want := range []string{"mkdir /a", "write /a/b.txt (2 bytes)", "unlink /a/b.txt", "rmdir /a"} {
		require.True(t, strings.Contains(out, want), "expected %q in log output:\n%s", want, out)
	}
}
