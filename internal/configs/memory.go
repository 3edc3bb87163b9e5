package configs

import (
	"slices"
	"sync"
)

// MemoryStore is an in-memory KeyValueStore that stands in for the git
// config in tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]string)}
}

func (m *MemoryStore) ConfigGetAll(key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.values[key]), nil
}

func (m *MemoryStore) ConfigAdd(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append(m.values[key], value)
	return nil
}

func (m *MemoryStore) ConfigUnset(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = slices.DeleteFunc(m.values[key], func(v string) bool { return v == value })
	if len(m.values[key]) == 0 {
		delete(m.values, key)
	}
	return nil
}
