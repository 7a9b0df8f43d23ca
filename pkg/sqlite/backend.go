// Package sqlite provides the public API for the SQLite shelf backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/shelf/internal/sqlite"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Logger receives backend diagnostics. *slog.Logger satisfies it.
type Logger = sqlite.Logger

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
// A nil logger disables diagnostics.
//
// Example:
//
//	backend := sqlite.NewBackend(nil)
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".shelf-db",
//	})
//	defer backend.Detach()
//	prefs, err := shelf.New(backend)
func NewBackend(logger Logger) types.Backend {
	if logger == nil {
		return sqlite.NewBackend()
	}
	return sqlite.NewBackend(sqlite.WithLogger(logger))
}
