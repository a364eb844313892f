package domain

// Well-known keys in the durable client-local storage.
const (
	StorageKeyFavorites = "favorites"
	StorageKeyGameStore = "game-store"
)

// Storage is the durable key-value store backing favorites and UI state.
// Values are JSON-serialized.
type Storage interface {
	// Load decodes the value under key into dest. It reports false when the key is absent.
	Load(key string, dest any) (bool, error)

	// Save serializes value under key, replacing any previous value.
	Save(key string, value any) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	Close() error
}
