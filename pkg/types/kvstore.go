package types

import "errors"

// KVStore is the persistent key-value store behind the four collections.
// Values are opaque bytes; callers own the encoding and always read or write
// a whole value.
type KVStore interface {
	// Attach connects the store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Get and Set return ErrStoreDetached.
	Detach() error

	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if nothing has been written under key.
	Get(key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(key string, value []byte) error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrKeyNotFound     = errors.New("key not found")
)
