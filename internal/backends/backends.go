// Package backends selects and attaches the storage backend named by a
// Config.
package backends

import (
	"fmt"

	"github.com/mesh-intelligence/shelf/internal/memory"
	"github.com/mesh-intelligence/shelf/internal/postgres"
	"github.com/mesh-intelligence/shelf/internal/sqlite"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Logger receives backend diagnostics. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// New returns a detached backend for config.Backend.
func New(config types.Config, logger Logger) (types.Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Backend {
	case types.BackendMemory:
		return memory.NewStore(), nil
	case types.BackendSQLite:
		if logger == nil {
			return sqlite.NewBackend(), nil
		}
		return sqlite.NewBackend(sqlite.WithLogger(logger)), nil
	case types.BackendPostgres:
		var options []postgres.Option
		if logger != nil {
			options = append(options, postgres.WithLogger(logger))
		}
		backend, err := postgres.NewBackend(options...)
		if err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrBackendUnknown, config.Backend)
	}
}

// Open creates the backend for config and attaches it. The caller detaches
// the returned backend when done.
func Open(config types.Config, logger Logger) (types.Backend, error) {
	backend, err := New(config, logger)
	if err != nil {
		return nil, err
	}
	if err := backend.Attach(config); err != nil {
		return nil, fmt.Errorf("attaching %s backend: %w", config.Backend, err)
	}
	return backend, nil
}
