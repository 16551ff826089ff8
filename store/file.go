package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/afero"

	"github.com/maxfl/SelectorFramework/errors"
)

// File is an open keyed record container. Writable files buffer entries in
// memory and persist them on Close; readable files load all entries on
// open.
type File struct {
	fs       afero.Fs
	path     string
	writable bool
	closed   bool
	entries  map[string]json.RawMessage
}

func createFile(fs afero.Fs, path string) (*File, error) {
	// Truncate eagerly so a crash before Close still leaves a fresh file,
	// matching "create resource at path (truncating any existing one)".
	if err := afero.WriteFile(fs, path, []byte("{}\n"), 0o644); err != nil {
		return nil, errors.Storage("create", path, err)
	}
	return &File{
		fs:       fs,
		path:     path,
		writable: true,
		entries:  make(map[string]json.RawMessage),
	}, nil
}

func openFile(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Storage("open", path, err)
	}
	entries := make(map[string]json.RawMessage)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, errors.Storage("decode", path, err)
		}
	}
	return &File{fs: fs, path: path, entries: entries}, nil
}

// Path returns the path the file was created or opened at.
func (f *File) Path() string { return f.path }

// Writable reports whether the file accepts Put calls.
func (f *File) Writable() bool { return f.writable }

// Put stores a value under key, replacing any previous entry.
func (f *File) Put(key string, v any) error {
	if f.closed {
		return errors.Storage("put", f.path, fmt.Errorf("file is closed"))
	}
	if !f.writable {
		return errors.Storage("put", f.path, fmt.Errorf("file is read-only"))
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Storage("encode", f.path, err).WithDetail("key", key)
	}
	f.entries[key] = raw
	return nil
}

// Get decodes the entry under key into v.
func (f *File) Get(key string, v any) error {
	raw, ok := f.entries[key]
	if !ok {
		return errors.Storage("get", f.path, fmt.Errorf("key %q not found", key)).WithDetail("key", key)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Storage("decode", f.path, err).WithDetail("key", key)
	}
	return nil
}

// Has reports whether an entry exists under key.
func (f *File) Has(key string) bool {
	_, ok := f.entries[key]
	return ok
}

// Keys returns all entry keys in sorted order.
func (f *File) Keys() []string {
	keys := make([]string, 0, len(f.entries))
	for k := range f.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close persists buffered entries for writable files and marks the file
// closed. Closing twice is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if !f.writable {
		return nil
	}
	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return errors.Storage("encode", f.path, err)
	}
	if err := afero.WriteFile(f.fs, f.path, append(data, '\n'), 0o644); err != nil {
		return errors.Storage("write", f.path, err)
	}
	return nil
}
