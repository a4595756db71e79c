package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// entity is anything stored in a collection.
type entity interface {
	GetID() string
}

// collection is one persisted array of entities. It is not safe for
// concurrent use; the owning store serializes access.
type collection[T entity] struct {
	key   string
	kv    types.KVStore
	log   zerolog.Logger
	items []T
}

// loadCollection reads key from kv. A missing or undecodable value yields an
// empty collection. Records that fail to decode on their own are skipped and
// the rest are kept. Failures are logged, never returned.
func loadCollection[T entity](kv types.KVStore, key string, log zerolog.Logger) *collection[T] {
	c := &collection[T]{key: key, kv: kv, log: log, items: []T{}}

	data, err := kv.Get(key)
	if errors.Is(err, types.ErrKeyNotFound) {
		log.Debug().Str("key", key).Msg("no stored collection, starting empty")
		return c
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("reading collection failed, starting empty")
		return c
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("stored collection is corrupt, starting empty")
		return c
	}
	for i, record := range raw {
		var item T
		if err := json.Unmarshal(record, &item); err != nil {
			log.Warn().Err(err).Str("key", key).Int("index", i).Msg("skipping malformed record")
			continue
		}
		c.items = append(c.items, item)
	}
	log.Debug().Str("key", key).Int("count", len(c.items)).Int("skipped", len(raw)-len(c.items)).Msg("loaded collection")
	return c
}

// list returns a copy of the items.
func (c *collection[T]) list() []T {
	return slices.Clone(c.items)
}

func (c *collection[T]) index(id string) int {
	return slices.IndexFunc(c.items, func(item T) bool { return item.GetID() == id })
}

func (c *collection[T]) find(id string) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// commit persists next as the whole collection and adopts it only when the
// write succeeds, so memory and storage never diverge.
func (c *collection[T]) commit(next []T) error {
	if next == nil {
		next = []T{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.key, err)
	}
	if err := c.kv.Set(c.key, data); err != nil {
		c.log.Error().Err(err).Str("key", c.key).Msg("persisting collection failed, change discarded")
		return fmt.Errorf("persisting %s: %w", c.key, err)
	}
	c.items = next
	c.log.Debug().Str("key", c.key).Int("count", len(next)).Msg("persisted collection")
	return nil
}

// save rewrites the current items.
func (c *collection[T]) save() error {
	return c.commit(c.items)
}

// appended returns a new slice with item added at the end.
func (c *collection[T]) appended(item T) []T {
	next := make([]T, 0, len(c.items)+1)
	next = append(next, c.items...)
	return append(next, item)
}

// replaced returns a new slice with the item at i swapped for item.
func (c *collection[T]) replaced(i int, item T) []T {
	next := slices.Clone(c.items)
	next[i] = item
	return next
}

// without returns a new slice lacking the item at i.
func (c *collection[T]) without(i int) []T {
	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	return append(next, c.items[i+1:]...)
}
