package store

import (
	"sync"

	"github.com/spf13/afero"
)

// Backend creates and opens keyed record files.
type Backend interface {
	// Create makes a writable file at path, truncating any existing one.
	Create(path string) (*File, error)
	// Open opens the file at path for reading.
	Open(path string) (*File, error)
}

// FS is a Backend over an afero filesystem.
type FS struct {
	fs afero.Fs
}

// NewFS creates a backend over the given filesystem.
func NewFS(fs afero.Fs) *FS {
	return &FS{fs: fs}
}

// NewOS creates a backend over the host filesystem.
func NewOS() *FS {
	return NewFS(afero.NewOsFs())
}

// Create makes a writable file at path, truncating any existing one.
func (b *FS) Create(path string) (*File, error) {
	return createFile(b.fs, path)
}

// Open opens the file at path for reading.
func (b *FS) Open(path string) (*File, error) {
	return openFile(b.fs, path)
}

// --- ambient current output ---

var (
	currentMu sync.RWMutex
	current   *File
)

// SetCurrent sets the ambient current output file. Components that do not
// care which output they write to use Current instead of asking the
// pipeline for a named output.
func SetCurrent(f *File) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = f
}

// Current returns the ambient current output file, or nil if none is set.
func Current() *File {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}
