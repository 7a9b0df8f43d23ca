package backends

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/memory"
	"github.com/mesh-intelligence/shelf/internal/postgres"
	"github.com/mesh-intelligence/shelf/internal/sqlite"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestNewSelectsBackend(t *testing.T) {
	tests := []struct {
		name   string
		config types.Config
		check  func(t *testing.T, b types.Backend)
	}{
		{
			name:   "memory",
			config: types.Config{Backend: types.BackendMemory},
			check: func(t *testing.T, b types.Backend) {
				assert.IsType(t, &memory.Store{}, b)
			},
		},
		{
			name:   "sqlite",
			config: types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()},
			check: func(t *testing.T, b types.Backend) {
				assert.IsType(t, &sqlite.Backend{}, b)
			},
		},
		{
			name:   "postgres",
			config: types.Config{Backend: types.BackendPostgres, DSN: "postgres://localhost/shelf"},
			check: func(t *testing.T, b types.Backend) {
				assert.IsType(t, &postgres.Backend{}, b)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.config, nil)
			require.NoError(t, err)
			tt.check(t, b)
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(types.Config{}, nil)
	assert.ErrorIs(t, err, types.ErrBackendEmpty)

	_, err = New(types.Config{Backend: "redis"}, nil)
	assert.ErrorIs(t, err, types.ErrBackendUnknown)

	_, err = New(types.Config{Backend: types.BackendPostgres}, nil)
	assert.ErrorIs(t, err, types.ErrDSNEmpty)
}

func TestOpenAttaches(t *testing.T) {
	b, err := Open(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, nil)
	require.NoError(t, err)
	defer b.Detach()

	require.NoError(t, b.Set("k", "v"))
	got, ok, err := b.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestOpenMemory(t *testing.T) {
	b, err := Open(types.Config{Backend: types.BackendMemory}, nil)
	require.NoError(t, err)
	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}
