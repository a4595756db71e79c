// Package postgres implements a PostgreSQL key-value backend for registrar,
// for deployments that share one registry between several machines. Values
// live in the registrar_kv table, one row per storage key.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// callTimeout bounds every statement issued by the backend.
const callTimeout = 5 * time.Second

const createKV = `CREATE TABLE IF NOT EXISTS registrar_kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

var _ types.KVStore = (*Backend)(nil)

// Backend implements types.KVStore on a pgx connection pool.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	pool     *pgxpool.Pool
}

// NewBackend creates a new PostgreSQL backend. Call Attach with a Config
// whose DSN points at the database.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach connects to config.DSN and creates the table if needed.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, config.DSN)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createKV); err != nil {
		pool.Close()
		return fmt.Errorf("creating schema: %w", err)
	}

	b.pool = pool
	b.attached = true
	return nil
}

// Detach closes the pool. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pool != nil {
		b.pool.Close()
		b.pool = nil
	}
	b.attached = false
	return nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (b *Backend) Get(key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	var value string
	err := b.pool.QueryRow(ctx, "SELECT value FROM registrar_kv WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, types.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return []byte(value), nil
}

// Set upserts the value stored under key.
func (b *Backend) Set(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	_, err := b.pool.Exec(ctx,
		`INSERT INTO registrar_kv (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
