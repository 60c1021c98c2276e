// Package store is the transactional key-value persistence layer the ledger
// core reads from and writes to. Backends commit every write made inside one
// Update callback atomically, or none of them.
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KV.Get for keys that were never written.
var ErrKeyNotFound = errors.New("store: key not found")

// KV is the view of the store inside one transaction.
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
}

// Store hands out transactional views over the persisted ledger state.
type Store interface {
	// View runs fn against a read-only snapshot.
	View(ctx context.Context, fn func(KV) error) error
	// Update runs fn against a writable view. The writes commit if and only
	// if fn returns nil; on error none of them take effect.
	Update(ctx context.Context, fn func(KV) error) error
	Close() error
}
