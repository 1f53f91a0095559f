// Package filesystem implements fsx.Filesystem.
//
// The engine (Filesystem) holds every rule of the contract: kind checks,
// overwrite verification, parent creation, and the depth-first copy and
// delete traversals. It reaches storage only through a Backend of primitive
// calls, so the same rules run against the host (OSBackend) and against an
// in-memory tree (MemoryBackend).
//
// Mutating operations are not transactional. A recursive delete or copy
// stops at the first failure and leaves whatever it already changed.
package filesystem
