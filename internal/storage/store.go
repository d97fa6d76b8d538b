// Package storage persists application state as whole JSON documents in a
// string-keyed store.
package storage

import (
	"context"
	"errors"
)

// ErrBusy is returned when an update could not acquire the store lock in time.
var ErrBusy = errors.New("storage: store busy")

// Reader reads raw documents by key.
type Reader interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
}

// Writer replaces or removes raw documents.
type Writer interface {
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Tx is the store view handed to an Update callback. Writes made through a
// Tx become visible to other callers only when the callback returns nil.
type Tx interface {
	Reader
	Writer
}

// Store is a string-keyed document store.
type Store interface {
	Tx
	// Update runs fn with exclusive access to the store. Every write made
	// through the Tx is committed together, or not at all when fn fails.
	Update(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Keys lists the keys currently held by the store.
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
