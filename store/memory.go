package store

import (
	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps entries in process memory. It backs tests and one-shot
// tooling where persistence across runs is unwanted. Entries never expire;
// like every Store they are only replaced by an explicit overwrite.
type MemoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{c: gocache.New(gocache.NoExpiration, 0)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.c.Set(key, value, gocache.NoExpiration)
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.c.Delete(key)
	return nil
}
