// Package kvtest holds the behavior every types.KVStore backend must share.
// Backend packages call Run from their own tests with a constructor that
// returns a freshly attached store.
package kvtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registrar/pkg/types"
)

// Factory returns an attached store. The factory registers its own cleanup.
type Factory func(t *testing.T) types.KVStore

// Run exercises the KVStore contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("get missing key returns ErrKeyNotFound", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(types.KeyCourses)
		assert.ErrorIs(t, err, types.ErrKeyNotFound)
	})

	t.Run("set then get returns the same bytes", func(t *testing.T) {
		s := newStore(t)
		value := []byte(`[{"id":"1","name":"English"}]`)
		require.NoError(t, s.Set(types.KeyCourses, value))

		got, err := s.Get(types.KeyCourses)
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("set overwrites the whole value", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(types.KeyCourseTypes, []byte(`[{"id":"1","name":"Group"},{"id":"2","name":"Individual"}]`)))
		require.NoError(t, s.Set(types.KeyCourseTypes, []byte(`[]`)))

		got, err := s.Get(types.KeyCourseTypes)
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), got)
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(types.KeyCourses, []byte(`["a"]`)))
		require.NoError(t, s.Set(types.KeyCourseOfferings, []byte(`["b"]`)))

		got, err := s.Get(types.KeyCourses)
		require.NoError(t, err)
		assert.Equal(t, []byte(`["a"]`), got)

		_, err = s.Get(types.KeyStudentRegistrations)
		assert.ErrorIs(t, err, types.ErrKeyNotFound)
	})

	t.Run("attach twice returns ErrAlreadyAttached", func(t *testing.T) {
		s := newStore(t)
		err := s.Attach(types.Config{Backend: types.BackendMemory})
		assert.ErrorIs(t, err, types.ErrAlreadyAttached)
	})

	t.Run("detached store rejects reads and writes", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Detach())
		require.NoError(t, s.Detach(), "Detach must be idempotent")

		_, err := s.Get(types.KeyCourses)
		assert.ErrorIs(t, err, types.ErrStoreDetached)
		assert.ErrorIs(t, s.Set(types.KeyCourses, []byte(`[]`)), types.ErrStoreDetached)
	})
}
