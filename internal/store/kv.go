package store

import "context"

// Keys of the two persisted values.
const (
	ProgressKey    = "progress"
	CustomDecksKey = "custom-decks"
)

// KVStore is a key-value store holding opaque JSON values.
type KVStore interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key. The write is atomic per key:
	// a concurrent Get observes either the old or the new value in full.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases the backend's resources.
	Close() error
}
