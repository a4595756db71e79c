package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registrar/internal/kvtest"
	"github.com/mesh-intelligence/registrar/pkg/types"
)

func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackendContract(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) types.KVStore {
		return setupBackend(t)
	})
}

func TestAttachCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(dir, DBFileName))
	assert.NoError(t, err)
}

func TestAttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{})
	assert.ErrorIs(t, err, types.ErrBackendEmpty)
}

func TestValuesSurviveReattach(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(cfg))
	require.NoError(t, b.Set(types.KeyCourseTypes, []byte(`[{"id":"t1","name":"Group"}]`)))
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(cfg))
	defer b2.Detach()

	got, err := b2.Get(types.KeyCourseTypes)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"t1","name":"Group"}]`, string(got))
}
