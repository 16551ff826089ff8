// Package store provides the keyed-file storage backend used by the
// pipeline engine for input sources and output results.
//
// A File is an opaque container of named entries. The engine only relies
// on three operations: create a file at a path (truncating any existing
// one), open a file for reading (idempotent per path), and set the
// ambient current output. The on-disk encoding is an implementation
// detail of this package.
//
// Backends are built over an afero filesystem, so tests can run entirely
// in memory.
package store
