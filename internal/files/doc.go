// Package files groups the filesystem engine and the tools built on it.
//
// Sub-packages:
//   - filesystem: the fsx.Filesystem engine with OS and in-memory backends
//   - scanner: recursive, glob-filtered file discovery with checksums
package files
