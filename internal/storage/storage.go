// Package storage persists store slices as opaque JSON blobs under string keys.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

// KV is the persisted key-value mechanism behind the store.
type KV interface {
	// Get returns ErrNotFound when key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Clear removes every key the backend owns.
	Clear(ctx context.Context) error
	Close() error
}
