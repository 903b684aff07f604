// Package blob provides key/value byte storage used to persist whole documents.
//
// Every backend stores opaque bytes under a string key. Reads of a key that was
// never written return ErrNotFound. There is no compare-and-swap: Put always
// replaces the previous value.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("blob: key not found")

// Backend is the storage binding behind the bookmark store.
type Backend interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value stored at key.
	Put(ctx context.Context, key string, data []byte) error
	// Ping reports whether the backend is usable.
	Ping(ctx context.Context) error
	// Name identifies the backend in logs and /infra.
	Name() string
	Close() error
}
