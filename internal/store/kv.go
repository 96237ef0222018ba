package store

import "context"

// KVStore is a string key-value store. Values are opaque to the store.
type KVStore interface {
	// Get returns the value stored under key. found is false when the key
	// has never been set; err is reserved for storage failures.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
