// Package scanner provides recursive file discovery over fsx.Filesystem.
//
// A scan walks a directory tree depth-first, keeps the files whose path
// relative to the root matches one of the given doublestar patterns, and
// records size and SHA-256 checksum for each. Because it only uses the
// fsx.Filesystem contract, the same scan runs against the host and
// against the in-memory implementation.
package scanner
