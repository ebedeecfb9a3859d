// Package store provides the durable key-value state shared by the Showcase
// client: credentials, the browser fingerprint, and last-known-good cache
// snapshots. The interface is deliberately small and synchronous so any
// backing (file on disk, process memory, Redis) can stand in for another,
// and so tests can swap in an in-memory fake.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Store is a flat string key-value bag. Writes are last-writer-wins; there is
// no TTL anywhere — entries are replaced, never expired.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}

// FileStore persists entries as a single JSON document, written through on
// every mutation. It is the closest analog to browser localStorage for a
// CLI: one file per user profile, shared by every command invocation.
type FileStore struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenFileStore loads (or creates) the store file at path. A missing file is
// an empty store; a corrupt file is discarded rather than failing open.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	fs := &FileStore{path: path, data: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &fs.data); err != nil {
		fs.data = make(map[string]string)
	}
	return fs, nil
}

func (fs *FileStore) Get(key string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	v, ok := fs.data[key]
	return v, ok
}

func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data[key] = value
	return fs.flush()
}

func (fs *FileStore) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.data[key]; !ok {
		return nil
	}
	delete(fs.data, key)
	return fs.flush()
}

// flush writes the whole document atomically via a temp-file rename.
// Callers must hold fs.mu.
func (fs *FileStore) flush() error {
	raw, err := json.Marshal(fs.data)
	if err != nil {
		return err
	}
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, fs.path)
}
