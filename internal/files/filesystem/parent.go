package filesystem

import (
	"path/filepath"
	"strings"
)

// ParentDirectory derives the parent of p by string manipulation only.
//
// The directory part of p is computed first ("." when p has no separator,
// the root separator for root children), then trailing '.', '/' and '\'
// characters are trimmed. The result is "" when p has no meaningful parent:
//
//	ParentDirectory("orphan")        == ""
//	ParentDirectory("./child")       == ""
//	ParentDirectory(".parent/child") == ".parent"
//	ParentDirectory("/parent/child") == "/parent"
func ParentDirectory(p string) string {
	return strings.TrimRight(dirname(p), `./\`)
}

// dirname returns everything before the final segment of p without any
// cleaning of the remaining segments.
func dirname(p string) string {
	end := len(p)
	for end > 0 && isSeparator(p[end-1]) {
		end--
	}
	if end == 0 {
		if p != "" {
			return p[:1]
		}
		return "."
	}

	for end > 0 && !isSeparator(p[end-1]) {
		end--
	}
	if end == 0 {
		return "."
	}

	for end > 0 && isSeparator(p[end-1]) {
		end--
	}
	if end == 0 {
		return p[:1]
	}
	return p[:end]
}

func isSeparator(c byte) bool {
	return c == '/' || c == filepath.Separator
}
