package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registrar/internal/memstore"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

// fixedTime is the clock used by every test state.
var fixedTime = time.Date(2025, 9, 1, 8, 15, 30, 123456789, time.UTC)

// seqIDs returns an IDFunc producing "id-1", "id-2", ...
func seqIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestState(t *testing.T) (*State, *memstore.Backend) {
	t.Helper()
	kv := memstore.New()
	t.Cleanup(func() { _ = kv.Detach() })
	return openTestState(kv), kv
}

func openTestState(kv types.KVStore) *State {
	return Open(kv, WithIDFunc(seqIDs()), WithClock(func() time.Time { return fixedTime }))
}

func decline(string) bool { return false }

// seedOffering creates course type and course by name and pairs them.
func seedOffering(t *testing.T, s *State, typeName, courseName string) types.CourseOffering {
	t.Helper()
	ct, ok := findByName(s.CourseTypes.List(), typeName)
	if !ok {
		var err error
		ct, err = s.CourseTypes.Create(typeName)
		require.NoError(t, err)
	}
	c, ok := findByName(s.Courses.List(), courseName)
	if !ok {
		var err error
		c, err = s.Courses.Create(courseName)
		require.NoError(t, err)
	}
	o, err := s.Offerings.Create(ct.ID, c.ID)
	require.NoError(t, err)
	return o
}

func findByName[T Named](items []T, name string) (T, bool) {
	for _, item := range items {
		if item.GetName() == name {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// storedJSON returns the raw value under key.
func storedJSON(t *testing.T, kv types.KVStore, key string) string {
	t.Helper()
	data, err := kv.Get(key)
	require.NoError(t, err)
	return string(data)
}

// encoded marshals v the way collections persist it.
func encoded(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

var errDiskFull = errors.New("disk full")

// failingStore wraps a KVStore and fails every Set while fail is true.
type failingStore struct {
	types.KVStore
	fail bool
}

func (f *failingStore) Set(key string, value []byte) error {
	if f.fail {
		return errDiskFull
	}
	return f.KVStore.Set(key, value)
}
