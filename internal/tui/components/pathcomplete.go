package components

import (
	"sort"
	"strings"

	"github.com/vvka-141/fsx/pkg/fsx"
)

// PathCompleter provides completions for paths on an fsx.Filesystem.
//
// Usage:
//
//	completer := NewPathCompleter(fsys, true) // dirs only
//	candidates := completer.Complete("./src/com")
type PathCompleter struct {
	fsys     fsx.Filesystem
	dirsOnly bool
}

// NewPathCompleter creates a new path completer.
// If dirsOnly is true, only directories are matched.
func NewPathCompleter(fsys fsx.Filesystem, dirsOnly bool) *PathCompleter {
	return &PathCompleter{fsys: fsys, dirsOnly: dirsOnly}
}

// Complete returns every entry of the input's parent directory whose name
// starts with the input's last segment, case-insensitively. Directories end
// with a slash. An unreadable parent yields no completions.
func (c *PathCompleter) Complete(input string) []string {
	parent, prefix := splitPath(input)

	names, err := c.fsys.ListDirectory(parent)
	if err != nil {
		return nil
	}

	lowPrefix := strings.ToLower(prefix)
	var matches []string
	for _, name := range names {
		if !strings.HasPrefix(strings.ToLower(name), lowPrefix) {
			continue
		}
		full := joinInput(input, parent, name)
		isDir := c.fsys.IsDirectory(full)
		if c.dirsOnly && !isDir {
			continue
		}
		if isDir {
			full += "/"
		}
		matches = append(matches, full)
	}

	sort.Strings(matches)
	return matches
}

// joinInput builds the completion for name so that it keeps the form the
// user typed: no "./" is added to a bare prefix.
func joinInput(input, parent, name string) string {
	if parent == "." && !strings.HasPrefix(input, "./") {
		return name
	}
	if strings.HasSuffix(parent, "/") {
		return parent + name
	}
	return parent + "/" + name
}

// splitPath splits an input into parent directory and name prefix.
//
//	"./src/com" → ("./src", "com")
//	"./src/"    → ("./src", "")
//	"/etc"      → ("/", "etc")
//	"my"        → (".", "my")
//	""          → (".", "")
//	"."         → (".", "")
func splitPath(input string) (parent, prefix string) {
	if input == "" || input == "." {
		return ".", ""
	}

	if strings.HasSuffix(input, "/") || strings.HasSuffix(input, `\`) {
		parent = strings.TrimRight(input, `/\`)
		if parent == "" {
			parent = "/"
		}
		return parent, ""
	}

	i := strings.LastIndexAny(input, `/\`)
	switch {
	case i < 0:
		return ".", input
	case i == 0:
		return "/", input[1:]
	default:
		return input[:i], input[i+1:]
	}
}
