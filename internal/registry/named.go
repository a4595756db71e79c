package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Named is an entity identified to users by a unique name.
type Named interface {
	entity
	GetName() string
}

// NamedStore is the editor for a collection of uniquely named entities.
// Course types and courses share it.
type NamedStore[T Named] struct {
	mu    sync.RWMutex
	noun  string // lower case, used in prompts: "course type"
	label string // sentence case, used in messages: "Course type"
	build func(id, name string) T
	ids   IDFunc
	log   zerolog.Logger
	col   *collection[T]
	edit  Session
}

func newNamedStore[T Named](kv types.KVStore, key, noun string, build func(id, name string) T, o options) *NamedStore[T] {
	log := o.log.With().Str("collection", key).Logger()
	return &NamedStore[T]{
		noun:  noun,
		label: strings.ToUpper(noun[:1]) + noun[1:],
		build: build,
		ids:   o.ids,
		log:   log,
		col:   loadCollection[T](kv, key, log),
	}
}

// Noun returns the lower-case entity name, e.g. "course type".
func (s *NamedStore[T]) Noun() string { return s.noun }

// List returns every entity in insertion order.
func (s *NamedStore[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.col.list()
}

// Len returns the number of entities.
func (s *NamedStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.col.items)
}

// Lookup returns the entity with id, if present.
func (s *NamedStore[T]) Lookup(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.col.find(id)
}

// Get returns the entity with id or ErrNotFound.
func (s *NamedStore[T]) Get(id string) (T, error) {
	if item, ok := s.Lookup(id); ok {
		return item, nil
	}
	var zero T
	return zero, fmt.Errorf("%s %q: %w", s.noun, id, types.ErrNotFound)
}

// NameOf resolves id to its current name, or MissingPlaceholder when the
// entity no longer exists.
func (s *NamedStore[T]) NameOf(id string) string {
	if item, ok := s.Lookup(id); ok {
		return item.GetName()
	}
	return MissingPlaceholder
}

// Create validates name and appends a new entity with a fresh ID and the
// trimmed name. The outcome is recorded in the editor session.
func (s *NamedStore[T]) Create(name string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.create(name)
	s.edit.record(err)
	return item, err
}

func (s *NamedStore[T]) create(name string) (T, error) {
	var zero T
	trimmed, err := s.validate(name, "")
	if err != nil {
		return zero, err
	}

	item := s.build(s.ids(), trimmed)
	if err := s.col.commit(s.col.appended(item)); err != nil {
		return zero, err
	}
	s.log.Info().Str("id", item.GetID()).Str("name", trimmed).Msgf("created %s", s.noun)
	return item, nil
}

// Update renames the entity with id. The ID never changes. Returns
// ErrNotFound if id does not exist.
func (s *NamedStore[T]) Update(id, name string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	i := s.col.index(id)
	if i < 0 {
		return zero, fmt.Errorf("%s %q: %w", s.noun, id, types.ErrNotFound)
	}
	trimmed, err := s.validate(name, id)
	if err != nil {
		return zero, err
	}

	item := s.build(id, trimmed)
	if err := s.col.commit(s.col.replaced(i, item)); err != nil {
		return zero, err
	}
	s.log.Info().Str("id", id).Str("name", trimmed).Msgf("updated %s", s.noun)
	return item, nil
}

// Delete removes the entity with id once confirm approves. Nothing that
// references the entity is touched. Declining, or an unknown id, changes
// nothing. Reports whether an entity was removed.
func (s *NamedStore[T]) Delete(id string, confirm Confirmer) (bool, error) {
	if !confirmed(confirm, fmt.Sprintf("Are you sure you want to delete this %s?", s.noun)) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.col.index(id)
	if i < 0 {
		return false, nil
	}
	if err := s.col.commit(s.col.without(i)); err != nil {
		return false, err
	}
	s.edit.forget(id)
	s.log.Info().Str("id", id).Msgf("deleted %s", s.noun)
	return true, nil
}

// BeginEdit enters Editing(id). Returns ErrNotFound for unknown ids.
func (s *NamedStore[T]) BeginEdit(id string) error {
	if _, ok := s.Lookup(id); !ok {
		return fmt.Errorf("%s %q: %w", s.noun, id, types.ErrNotFound)
	}
	s.edit.Begin(id)
	return nil
}

// CommitEdit applies name to the entity being edited and returns to Idle.
// On a validation failure the editor stays in Editing.
func (s *NamedStore[T]) CommitEdit(name string) (T, error) {
	var out T
	err := s.edit.commit(func(id string) error {
		item, err := s.Update(id, name)
		out = item
		return err
	})
	return out, err
}

// CancelEdit discards the edit in progress.
func (s *NamedStore[T]) CancelEdit() { s.edit.Cancel() }

// Session exposes the editor's edit state.
func (s *NamedStore[T]) Session() *Session { return &s.edit }

func (s *NamedStore[T]) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.col.save()
}

// validate trims name and checks it is non-empty and unique, ignoring the
// entity with selfID.
func (s *NamedStore[T]) validate(name, selfID string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", types.NewValidationError("%s name is required", s.label)
	}
	for _, existing := range s.col.items {
		if existing.GetID() == selfID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(existing.GetName()), trimmed) {
			return "", types.NewValidationError("%s with this name already exists", s.label)
		}
	}
	return trimmed, nil
}
