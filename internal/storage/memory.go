package storage

import (
	"encoding/json"
	"sync"

	"github.com/mmcdole/gamedeck/internal/domain"
)

// MemoryStorage is a process-local domain.Storage. Values still round-trip
// through JSON so callers see the same decoding behavior as BoltStorage.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string][]byte
	saves  int
}

var _ domain.Storage = (*MemoryStorage)(nil)

func NewMemory() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(key string, dest any) (bool, error) {
	m.mu.Lock()
	data, ok := m.values[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *MemoryStorage) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.values[key] = data
	m.saves++
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Close() error { return nil }

// Raw returns the encoded bytes under key.
func (m *MemoryStorage) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.values[key]
	return data, ok
}

// Saves returns how many times Save succeeded.
func (m *MemoryStorage) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
