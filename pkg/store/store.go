// Package store is the public entry point for registrar persistence. It
// builds the backend named in a Config while keeping the implementations
// internal.
package store

import (
	"fmt"

	"github.com/mesh-intelligence/registrar/internal/filestore"
	"github.com/mesh-intelligence/registrar/internal/memstore"
	"github.com/mesh-intelligence/registrar/internal/postgres"
	"github.com/mesh-intelligence/registrar/internal/sqlite"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// NewBackend returns an unattached backend for name.
// Returns ErrBackendUnknown for names it does not recognize.
func NewBackend(name string) (types.KVStore, error) {
	switch name {
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case types.BackendFile:
		return filestore.NewBackend(), nil
	case types.BackendMemory:
		return memstore.NewBackend(), nil
	case types.BackendPostgres:
		return postgres.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, name)
	}
}

// Open builds the backend named by config.Backend and attaches it.
// The caller must Detach the returned store.
//
// Example:
//
//	kv, err := store.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".registrar-db",
//	})
//	defer kv.Detach()
func Open(config types.Config) (types.KVStore, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	kv, err := NewBackend(config.Backend)
	if err != nil {
		return nil, err
	}
	if err := kv.Attach(config); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", config.Backend, err)
	}
	return kv, nil
}
