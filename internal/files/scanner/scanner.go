package scanner

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/fsx/internal/checksum"
	"github.com/vvka-141/fsx/internal/files/filesystem"
	"github.com/vvka-141/fsx/pkg/fsx"
)

// FileMetadata describes one file found by a scan.
type FileMetadata struct {
	Path      string // slash-separated, relative to the scan root
	Name      string
	Directory string // "" for files directly under the root
	Extension string
	Depth     int
	SizeBytes int64
	Checksum  string // SHA-256 of the raw content
}

// ScanResult holds the files found under Root, sorted by Path.
type ScanResult struct {
	Root  string
	Files []FileMetadata
}

// Scanner discovers files in a directory tree through an fsx.Filesystem.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and filesystem are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsys       fsx.Filesystem
}

// NewScanner creates a new file scanner with the given checksum calculator.
// Uses the OS filesystem by default.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsys:       filesystem.NewOSFileSystem(fsx.Options{}),
	}
}

// NewScannerWithFS creates a new file scanner over a custom filesystem.
// Panics if calculator or fsys is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsys fsx.Filesystem) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsys:       fsys,
	}
}

// Scan recursively lists the files under root whose relative path matches
// at least one of patterns (doublestar syntax, e.g. "**/*.go").
// With no patterns every file matches.
//
// Symlinked files are included; symlinked directories are not descended.
// The first listing or read failure aborts the scan.
func (s *Scanner) Scan(root string, patterns ...string) (ScanResult, error) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return ScanResult{}, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	var files []FileMetadata
	err := s.walk(root, "", func(abs, rel string) error {
		if !Match(rel, patterns) {
			return nil
		}
		meta, err := s.processFile(abs, rel)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", rel, err)
		}
		files = append(files, meta)
		return nil
	})
	if err != nil {
		return ScanResult{}, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return ScanResult{Root: root, Files: files}, nil
}

// walk visits every file below dir depth-first in listing order.
func (s *Scanner) walk(dir, rel string, visit func(abs, rel string) error) error {
	names, err := s.fsys.ListDirectory(dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		childAbs := fsx.Join(dir, name)
		childRel := name
		if rel != "" {
			childRel = rel + "/" + name
		}

		switch {
		case s.fsys.IsSymLink(childAbs) && !s.fsys.IsFile(childAbs):
			continue
		case s.fsys.IsDirectory(childAbs):
			if err := s.walk(childAbs, childRel, visit); err != nil {
				return err
			}
		case s.fsys.IsFile(childAbs):
			if err := visit(childAbs, childRel); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Scanner) processFile(abs, rel string) (FileMetadata, error) {
	content, err := s.fsys.ReadFile(abs)
	if err != nil {
		return FileMetadata{}, err
	}

	directory := path.Dir(rel)
	if directory == "." {
		directory = ""
	}
	name := path.Base(rel)

	return FileMetadata{
		Path:      rel,
		Name:      name,
		Directory: directory,
		Extension: path.Ext(name),
		Depth:     strings.Count(rel, "/"),
		SizeBytes: int64(len(content)),
		Checksum:  s.calculator.CalculateRaw(content),
	}, nil
}

// Match reports whether the slash-separated path rel matches any of
// patterns. An empty pattern list matches everything. Malformed patterns
// never match.
func Match(rel string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
