// Package storage persists favorites and browse state between sessions.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/gamedeck/internal/domain"
)

var bucketPrefs = []byte("prefs")

// BoltStorage implements domain.Storage using BoltDB.
type BoltStorage struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

var _ domain.Storage = (*BoltStorage)(nil)

// Open opens (or creates) the database at path. An empty path returns a
// memory-only store.
func Open(path string) (*BoltStorage, error) {
	if path == "" {
		// Memory-only mode (no persistence)
		return &BoltStorage{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPrefs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStorage{db: db, cache: make(map[string][]byte)}, nil
}

func (s *BoltStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load decodes the value stored under key into dest.
func (s *BoltStorage) Load(key string, dest any) (bool, error) {
	// Check memory cache first
	s.mu.RLock()
	data, ok := s.cache[key]
	s.mu.RUnlock()

	if !ok {
		if s.db == nil {
			return false, nil
		}

		err := s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketPrefs)
			if b == nil {
				return nil
			}
			if v := b.Get([]byte(key)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if err != nil {
			return false, fmt.Errorf("failed to read %q: %w", key, err)
		}
		if data == nil {
			return false, nil
		}

		// Promote to memory cache
		s.mu.Lock()
		s.cache[key] = data
		s.mu.Unlock()
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

// Save JSON-encodes value and stores it under key.
func (s *BoltStorage) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketPrefs).Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("failed to write %q: %w", key, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()
	return nil
}

func (s *BoltStorage) Delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPrefs).Delete([]byte(key))
	})
}
