// Package store persists the console's local state: the saved bearer token
// and the cached profile record.
package store

import "context"

// Durable entry keys. The session access key is deliberately absent: it is
// a short-lived credential that must not survive the process.
const (
	KeyToken   = "token"
	KeyProfile = "profile"
)

// Store is the local key/value persistence layer.
type Store interface {
	// Get returns the value for key, or "" if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Put writes the value for key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
