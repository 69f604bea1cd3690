package localstore

import "context"

// Store is the durable local key-value storage used for read cursors and
// hidden-id sets. A missing key is reported through ok=false, not an error.
type Store interface {
	// Get returns the value for key, ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying storage.
	Close() error
}
