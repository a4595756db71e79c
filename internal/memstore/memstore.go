// Package memstore implements an in-process backend on go-cache. Nothing is
// written to disk; values live until the process exits. Used by tests and by
// the "memory" backend for throwaway sessions.
package memstore

import (
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

var _ types.KVStore = (*Backend)(nil)

// Backend implements types.KVStore on a non-expiring go-cache.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	cache    *gocache.Cache
}

// NewBackend creates a new in-memory backend. Call Attach before use.
func NewBackend() *Backend {
	return &Backend{}
}

// New returns an attached in-memory backend.
func New() *Backend {
	b := NewBackend()
	_ = b.Attach(types.Config{Backend: types.BackendMemory})
	return b
}

// Attach allocates the cache. Config.DataDir is ignored.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	// A zero cleanup interval disables the janitor goroutine.
	b.cache = gocache.New(gocache.NoExpiration, 0)
	b.attached = true
	return nil
}

// Detach drops every value. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cache != nil {
		b.cache.Flush()
		b.cache = nil
	}
	b.attached = false
	return nil
}

// Get returns a copy of the value stored under key.
func (b *Backend) Get(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	v, found := b.cache.Get(key)
	if !found {
		return nil, types.ErrKeyNotFound
	}
	data, _ := v.([]byte)
	return append([]byte(nil), data...), nil
}

// Set stores a copy of value under key.
func (b *Backend) Set(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	b.cache.Set(key, append([]byte(nil), value...), gocache.NoExpiration)
	return nil
}
