package fsx

// Options configures a Filesystem implementation.
type Options struct {
	// Logger receives verbose traces of mutating operations.
	// A nil Logger discards everything.
	Logger Logger
}
