package fsx

import "path/filepath"

// Join appends name to dir with a single separator. Unlike filepath.Join it
// does not clean the result, so paths are passed to the OS as the caller
// wrote them. An empty dir yields name.
func Join(dir, name string) string {
	if dir == "" {
		return name
	}
	if last := dir[len(dir)-1]; last == '/' || last == filepath.Separator {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}
