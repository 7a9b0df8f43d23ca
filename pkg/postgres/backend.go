// Package postgres provides the public API for the PostgreSQL shelf backend.
package postgres

import (
	"github.com/mesh-intelligence/shelf/internal/postgres"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Logger receives backend diagnostics. *slog.Logger satisfies it.
type Logger = postgres.Logger

// NewBackend creates a detached PostgreSQL backend that keeps its slots in
// tableName, or in the default table when tableName is empty. A nil logger
// disables diagnostics.
func NewBackend(tableName string, logger Logger) (types.Backend, error) {
	var options []postgres.Option
	if tableName != "" {
		options = append(options, postgres.WithTableName(tableName))
	}
	if logger != nil {
		options = append(options, postgres.WithLogger(logger))
	}
	backend, err := postgres.NewBackend(options...)
	if err != nil {
		return nil, err
	}
	return backend, nil
}
