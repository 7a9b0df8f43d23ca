package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { _ = b.Detach() })
	return b, dir
}

func TestAttachCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(dir, dbFileName))
	assert.NoError(t, err)
}

func TestAttachErrors(t *testing.T) {
	b, dir := attachTemp(t)
	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)

	other := NewBackend()
	assert.ErrorIs(t, other.Attach(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, other.Attach(types.Config{Backend: types.BackendMemory}), types.ErrBackendUnknown)
}

func TestDetachedOperations(t *testing.T) {
	b := NewBackend()
	_, _, err := b.Get("k")
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.ErrorIs(t, b.Set("k", "v"), types.ErrDetached)
	assert.ErrorIs(t, b.Remove("k"), types.ErrDetached)
	_, err = b.Keys()
	assert.ErrorIs(t, err, types.ErrDetached)

	assert.NoError(t, b.Detach(), "detach is idempotent")
}

func TestSetGetNativeKinds(t *testing.T) {
	b, _ := attachTemp(t)
	when := time.Date(2020, 3, 11, 0, 0, 0, 42, time.UTC)

	tests := []struct {
		key  string
		in   any
		want any
	}{
		{"string", "abc", "abc"},
		{"int", 12, int64(12)},
		{"float", 0.25, 0.25},
		{"bool", false, false},
		{"data", []byte("blob"), []byte("blob")},
		{"array", []any{"a", int64(1)}, []any{"a", int64(1)}},
		{"map", map[string]any{"x": []any{true}}, map[string]any{"x": []any{true}}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, b.Set(tt.key, tt.in))
			got, ok, err := b.Get(tt.key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("object", func(t *testing.T) {
		require.NoError(t, b.Set("object", when))
		got, ok, err := b.Get("object")
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, when.Equal(got.(time.Time)))
	})
}

func TestSetOverwritesAndRemoves(t *testing.T) {
	b, _ := attachTemp(t)
	require.NoError(t, b.Set("k", "one"))
	require.NoError(t, b.Set("k", int64(2)))

	got, ok, err := b.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), got)

	require.NoError(t, b.Set("k", nil))
	_, ok, err = b.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, b.Remove("never-set"))
}

func TestSetRejectsUnsupported(t *testing.T) {
	b, _ := attachTemp(t)
	assert.ErrorIs(t, b.Set("k", struct{}{}), types.ErrUnsupportedValue)
	assert.ErrorIs(t, b.Set("", "v"), types.ErrInvalidKey)
}

func TestKeys(t *testing.T) {
	b, _ := attachTemp(t)
	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	for _, k := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, b.Set(k, k))
	}
	keys, err = b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, keys)
}

func TestSlotsSurviveReattach(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(cfg))
	require.NoError(t, b.Set("followerCount", 3))
	require.NoError(t, b.Detach())

	reopened := NewBackend()
	require.NoError(t, reopened.Attach(cfg))
	defer reopened.Detach()

	got, ok, err := reopened.Get("followerCount")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3), got)
}

func TestGetMalformedRow(t *testing.T) {
	b, _ := attachTemp(t)
	_, err := b.db.Exec(upsertSlot, "broken", "int", `{"t":"int","v":"x"}`, "2020-01-01T00:00:00Z")
	require.NoError(t, err)

	_, ok, err := b.Get("broken")
	assert.Error(t, err)
	assert.False(t, ok)
}
