package filesystem

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// maxSymlinkHops bounds symlink resolution, matching the usual ELOOP limit.
const maxSymlinkHops = 40

var (
	errIsDir       = errors.New("is a directory")
	errDirNotEmpty = errors.New("directory not empty")
	errTooManyLink = errors.New("too many levels of symbolic links")
	errInvalidMove = errors.New("cannot move a directory into itself")
)

// errNotDir is the errno the OS reports for a file used as a directory,
// so callers classify both backends the same way.
var errNotDir error = syscall.ENOTDIR

// memoryFileInfo implements fs.FileInfo for in-memory entries.
// Sys returns the uuid.UUID identifying the underlying node.
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	id      uuid.UUID
}

func (i *memoryFileInfo) Name() string       { return i.name }
func (i *memoryFileInfo) Size() int64        { return i.size }
func (i *memoryFileInfo) Mode() fs.FileMode  { return i.mode }
func (i *memoryFileInfo) ModTime() time.Time { return i.modTime }
func (i *memoryFileInfo) IsDir() bool        { return i.mode.IsDir() }
func (i *memoryFileInfo) Sys() interface{}   { return i.id }

// memoryNode is a file, directory or symlink in the in-memory tree.
type memoryNode struct {
	id       uuid.UUID
	mode     fs.FileMode
	modTime  time.Time
	content  []byte
	target   string
	children map[string]*memoryNode
}

func (n *memoryNode) isDir() bool     { return n.mode.IsDir() }
func (n *memoryNode) isSymlink() bool { return n.mode&fs.ModeSymlink != 0 }

// allows reports whether the owner permission bits grant mode.
func (n *memoryNode) allows(mode AccessMode) bool {
	want := fs.FileMode(mode) << 6
	return n.mode.Perm()&want == want
}

func (n *memoryNode) info(name string) FileInfo {
	return &memoryFileInfo{
		name:    name,
		size:    int64(len(n.content)),
		mode:    n.mode,
		modTime: n.modTime,
		id:      n.id,
	}
}

func newMemoryNode(mode fs.FileMode) *memoryNode {
	n := &memoryNode{
		id:      uuid.New(),
		mode:    mode,
		modTime: time.Now(),
	}
	if mode.IsDir() {
		n.children = make(map[string]*memoryNode)
	}
	return n
}

// location is the result of resolving a path in the tree.
// node is nil when the final entry does not exist.
type location struct {
	dir     *memoryNode
	dirPath string
	name    string
	node    *memoryNode
}

// MemoryBackend implements Backend as an in-memory tree.
//
// Paths use forward slashes; relative paths resolve against "/". The process
// is treated as the owner of every entry, so only owner permission bits are
// enforced: directory traversal needs x, listing needs r, adding or removing
// entries needs w on the directory, reading and writing files need r and w.
type MemoryBackend struct {
	mu   sync.RWMutex
	root *memoryNode
}

// NewMemoryBackend creates an empty in-memory tree with a 0755 root.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{root: newMemoryNode(fs.ModeDir | 0755)}
}

// clean normalizes p to an absolute slash-separated path.
func clean(p string) string {
	p = filepath.ToSlash(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

func pathError(op, p string, err error) error {
	return &fs.PathError{Op: op, Path: p, Err: err}
}

// resolve walks p through the tree. Intermediate symlinks are always
// followed; the final one only when follow is set.
func (m *MemoryBackend) resolve(p string, follow bool) (location, error) {
	return m.resolveHops(clean(p), follow, 0)
}

func (m *MemoryBackend) resolveHops(abs string, follow bool, hops int) (location, error) {
	if abs == "/" {
		return location{dirPath: "/", node: m.root}, nil
	}

	parts := strings.Split(abs[1:], "/")
	dir := m.root
	dirPath := "/"
	for _, part := range parts[:len(parts)-1] {
		if !dir.allows(AccessExecute) {
			return location{}, fs.ErrPermission
		}
		next, ok := dir.children[part]
		if !ok {
			return location{}, fs.ErrNotExist
		}
		childPath := path.Join(dirPath, part)
		if next.isSymlink() {
			loc, err := m.followLink(dirPath, next, hops)
			if err != nil {
				return location{}, err
			}
			if loc.node == nil {
				return location{}, fs.ErrNotExist
			}
			next = loc.node
			childPath = path.Join(loc.dirPath, loc.name)
		}
		if !next.isDir() {
			return location{}, errNotDir
		}
		dir = next
		dirPath = childPath
	}

	if !dir.allows(AccessExecute) {
		return location{}, fs.ErrPermission
	}
	name := parts[len(parts)-1]
	node := dir.children[name]
	if follow && node != nil && node.isSymlink() {
		return m.followLink(dirPath, node, hops)
	}
	return location{dir: dir, dirPath: dirPath, name: name, node: node}, nil
}

func (m *MemoryBackend) followLink(dirPath string, link *memoryNode, hops int) (location, error) {
	if hops >= maxSymlinkHops {
		return location{}, errTooManyLink
	}
	target := link.target
	if !path.IsAbs(target) {
		target = path.Join(dirPath, target)
	}
	return m.resolveHops(path.Clean(target), true, hops+1)
}

// existing resolves p and fails when the final entry is missing.
func (m *MemoryBackend) existing(op, p string, follow bool) (location, error) {
	loc, err := m.resolve(p, follow)
	if err != nil {
		return location{}, pathError(op, p, err)
	}
	if loc.node == nil {
		return location{}, pathError(op, p, fs.ErrNotExist)
	}
	return loc, nil
}

func (m *MemoryBackend) Stat(p string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	loc, err := m.existing("stat", p, true)
	if err != nil {
		return nil, err
	}
	return loc.node.info(path.Base(clean(p))), nil
}

func (m *MemoryBackend) Lstat(p string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	loc, err := m.existing("lstat", p, false)
	if err != nil {
		return nil, err
	}
	return loc.node.info(path.Base(clean(p))), nil
}

func (m *MemoryBackend) Access(p string, mode AccessMode) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	loc, err := m.existing("access", p, true)
	if err != nil {
		return err
	}
	if !loc.node.allows(mode) {
		return pathError("access", p, fs.ErrPermission)
	}
	return nil
}

func (m *MemoryBackend) ReadDirNames(p string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	loc, err := m.existing("open", p, true)
	if err != nil {
		return nil, err
	}
	if !loc.node.isDir() {
		return nil, pathError("readdirent", p, errNotDir)
	}
	if !loc.node.allows(AccessRead) {
		return nil, pathError("open", p, fs.ErrPermission)
	}

	names := make([]string, 0, len(loc.node.children))
	for name := range loc.node.children {
		names = append(names, name)
	}
	return names, nil
}

func (m *MemoryBackend) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	loc, err := m.existing("open", p, true)
	if err != nil {
		return nil, err
	}
	if loc.node.isDir() {
		return nil, pathError("read", p, errIsDir)
	}
	if !loc.node.allows(AccessRead) {
		return nil, pathError("open", p, fs.ErrPermission)
	}

	data := make([]byte, len(loc.node.content))
	copy(data, loc.node.content)
	return data, nil
}

func (m *MemoryBackend) WriteFile(p string, data []byte, perm fs.FileMode) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	node, err := m.openForWrite("open", p, perm)
	if err != nil {
		return 0, err
	}
	node.content = append([]byte(nil), data...)
	node.modTime = time.Now()
	return len(data), nil
}

// openForWrite returns the file at p, creating it with perm when missing.
// Callers hold the write lock.
func (m *MemoryBackend) openForWrite(op, p string, perm fs.FileMode) (*memoryNode, error) {
	loc, err := m.resolve(p, true)
	if err != nil {
		return nil, pathError(op, p, err)
	}
	if loc.node != nil {
		if loc.node.isDir() {
			return nil, pathError(op, p, errIsDir)
		}
		if !loc.node.allows(AccessWrite) {
			return nil, pathError(op, p, fs.ErrPermission)
		}
		return loc.node, nil
	}
	if loc.dir == nil {
		return nil, pathError(op, p, fs.ErrNotExist)
	}
	if !loc.dir.allows(AccessWrite) {
		return nil, pathError(op, p, fs.ErrPermission)
	}

	node := newMemoryNode(perm.Perm())
	loc.dir.children[loc.name] = node
	return node, nil
}

func (m *MemoryBackend) Mkdir(p string, perm fs.FileMode, recursive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !recursive {
		return m.mkdir(p, perm)
	}

	abs := clean(p)
	if abs == "/" {
		return nil
	}
	prefix := ""
	for _, part := range strings.Split(abs[1:], "/") {
		prefix += "/" + part
		loc, err := m.resolve(prefix, true)
		if err != nil {
			return pathError("mkdir", prefix, err)
		}
		if loc.node != nil {
			if !loc.node.isDir() {
				return pathError("mkdir", prefix, errNotDir)
			}
			continue
		}
		if err := m.mkdir(prefix, perm); err != nil {
			return err
		}
	}
	return nil
}

// mkdir creates a single directory. Callers hold the write lock.
func (m *MemoryBackend) mkdir(p string, perm fs.FileMode) error {
	loc, err := m.resolve(p, false)
	if err != nil {
		return pathError("mkdir", p, err)
	}
	if loc.node != nil {
		return pathError("mkdir", p, fs.ErrExist)
	}
	if !loc.dir.allows(AccessWrite) {
		return pathError("mkdir", p, fs.ErrPermission)
	}
	loc.dir.children[loc.name] = newMemoryNode(fs.ModeDir | perm.Perm())
	return nil
}

func (m *MemoryBackend) Remove(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	loc, err := m.existing("remove", p, false)
	if err != nil {
		return err
	}
	if loc.node.isDir() {
		return pathError("remove", p, errIsDir)
	}
	return m.detach("remove", p, loc)
}

func (m *MemoryBackend) Rmdir(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	loc, err := m.existing("rmdir", p, false)
	if err != nil {
		return err
	}
	if !loc.node.isDir() {
		return pathError("rmdir", p, errNotDir)
	}
	if len(loc.node.children) > 0 {
		return pathError("rmdir", p, errDirNotEmpty)
	}
	return m.detach("rmdir", p, loc)
}

// detach unlinks loc from its directory. Callers hold the write lock.
func (m *MemoryBackend) detach(op, p string, loc location) error {
	if loc.dir == nil {
		return pathError(op, p, fs.ErrPermission)
	}
	if !loc.dir.allows(AccessWrite) {
		return pathError(op, p, fs.ErrPermission)
	}
	delete(loc.dir.children, loc.name)
	return nil
}

func (m *MemoryBackend) Rename(src, dest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from, err := m.existing("rename", src, false)
	if err != nil {
		return err
	}
	to, err := m.resolve(dest, false)
	if err != nil {
		return pathError("rename", dest, err)
	}
	if from.dir == nil || to.dir == nil {
		return pathError("rename", src, fs.ErrPermission)
	}
	if from.node == to.node {
		return nil
	}

	srcAbs := path.Join(from.dirPath, from.name)
	destAbs := path.Join(to.dirPath, to.name)
	if from.node.isDir() && strings.HasPrefix(destAbs+"/", srcAbs+"/") {
		return pathError("rename", src, errInvalidMove)
	}

	if to.node != nil {
		switch {
		case from.node.isDir() && !to.node.isDir():
			return pathError("rename", dest, errNotDir)
		case !from.node.isDir() && to.node.isDir():
			return pathError("rename", dest, errIsDir)
		case to.node.isDir() && len(to.node.children) > 0:
			return pathError("rename", dest, errDirNotEmpty)
		}
	}
	if !from.dir.allows(AccessWrite) || !to.dir.allows(AccessWrite) {
		return pathError("rename", src, fs.ErrPermission)
	}

	delete(from.dir.children, from.name)
	to.dir.children[to.name] = from.node
	return nil
}

func (m *MemoryBackend) CopyFile(src, dest string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from, err := m.existing("open", src, true)
	if err != nil {
		return err
	}
	if from.node.isDir() {
		return pathError("read", src, errIsDir)
	}
	if !from.node.allows(AccessRead) {
		return pathError("open", src, fs.ErrPermission)
	}

	node, err := m.openForWrite("open", dest, perm)
	if err != nil {
		return err
	}
	node.content = append([]byte(nil), from.node.content...)
	node.modTime = time.Now()
	return nil
}

func (m *MemoryBackend) Chmod(p string, mode fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	loc, err := m.existing("chmod", p, true)
	if err != nil {
		return err
	}
	loc.node.mode = loc.node.mode&^fs.ModePerm | mode.Perm()
	return nil
}

// AddFile adds a 0644 file, creating missing parent directories with 0755.
// Permissions are not checked. Intended for seeding test fixtures.
func (m *MemoryBackend) AddFile(p string, content string) {
	m.AddFileWithMode(p, content, 0644)
}

// AddFileWithMode adds a file with the given permission bits.
func (m *MemoryBackend) AddFileWithMode(p string, content string, perm fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir := m.ensureDirectoriesExist(path.Dir(clean(p)))
	node := newMemoryNode(perm.Perm())
	node.content = []byte(content)
	dir.children[path.Base(clean(p))] = node
}

// AddDir adds a 0755 directory and any missing parents.
func (m *MemoryBackend) AddDir(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureDirectoriesExist(clean(p))
}

// Symlink creates a symbolic link at link pointing to target.
// target is stored verbatim and resolved relative to the link's directory.
func (m *MemoryBackend) Symlink(target, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	loc, err := m.resolve(link, false)
	if err != nil {
		return pathError("symlink", link, err)
	}
	if loc.node != nil {
		return pathError("symlink", link, fs.ErrExist)
	}
	if !loc.dir.allows(AccessWrite) {
		return pathError("symlink", link, fs.ErrPermission)
	}

	node := newMemoryNode(fs.ModeSymlink | 0777)
	node.target = filepath.ToSlash(target)
	loc.dir.children[loc.name] = node
	return nil
}

// ensureDirectoriesExist creates directory entries along abs without
// permission checks and returns the final directory. Existing non-directory
// entries along the way are replaced. Callers hold the write lock.
func (m *MemoryBackend) ensureDirectoriesExist(abs string) *memoryNode {
	dir := m.root
	if abs == "/" {
		return dir
	}
	for _, part := range strings.Split(abs[1:], "/") {
		next, ok := dir.children[part]
		if !ok || !next.isDir() {
			next = newMemoryNode(fs.ModeDir | 0755)
			dir.children[part] = next
		}
		dir = next
	}
	return dir
}

var _ Backend = (*MemoryBackend)(nil)
