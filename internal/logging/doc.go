// Package logging provides concrete implementations of the fsx.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with thread-safe output
//   - NullLogger: Discards all messages (the library default)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
