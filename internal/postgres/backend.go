// Package postgres implements the PostgreSQL storage backend for shelf.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mesh-intelligence/shelf/internal/wire"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	defaultTableName       = "shelf_slots"
	logMsgAttached         = "postgres backend attached"
	logMsgDetached         = "postgres backend detached"
	logMsgBuildQueryFailed = "failed to build query"
	logMsgSlotWritten      = "slot written"
	logMsgSlotRemoved      = "slot removed"
	logMsgSlotCorrupt      = "slot holds a malformed value"
	logMsgSQLExecuted      = "executed sql"
	logAttrTable           = "table"
	logAttrKey             = "key"
	logAttrKind            = "kind"
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrDurationMS      = "duration_ms"
	colKey                 = "key"
	colKind                = "kind"
	colValue               = "value"
	colUpdatedAt           = "updated_at"
	dialectPostgres        = "postgres"
	castJsonb              = "?::jsonb"
	excludedKind           = "EXCLUDED.kind"
	excludedValue          = "EXCLUDED.value"
	excludedUpdatedAt      = "EXCLUDED.updated_at"
)

const createTableTemplate = `CREATE TABLE IF NOT EXISTS %s (
    key TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    value JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

// ErrEmptyTableName is returned by WithTableName for an empty name.
var ErrEmptyTableName = errors.New("table name must not be empty")

var _ types.Backend = (*Backend)(nil)

// Logger receives SQL and lifecycle diagnostics. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Backend implements types.Backend on one PostgreSQL table. Every operation
// runs under a context bounded by Config.Timeout.
type Backend struct {
	mu        sync.RWMutex
	attached  bool
	config    types.Config
	pool      *pgxpool.Pool
	tableName string
	logger    Logger
	now       func() time.Time
}

// Option configures a Backend.
type Option func(*Backend) error

// WithTableName sets the table that holds the slots.
func WithTableName(tableName string) Option {
	return func(b *Backend) error {
		if tableName == "" {
			return ErrEmptyTableName
		}
		b.tableName = tableName
		return nil
	}
}

// WithLogger sets the logger for the Backend.
//
// Debug level: SQL statements with execution timing
// Info level: attach and detach
// Warn level: slots that fail to decode
// Error level: statements that could not be built.
func WithLogger(logger Logger) Option {
	return func(b *Backend) error {
		b.logger = logger
		return nil
	}
}

// NewBackend creates a detached PostgreSQL backend.
func NewBackend(options ...Option) (*Backend, error) {
	b := &Backend{tableName: defaultTableName, now: time.Now}
	for _, option := range options {
		if err := option(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Attach connects to config.DSN and creates the slot table if needed.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendPostgres {
		return fmt.Errorf("%w: %s is not postgres", types.ErrBackendUnknown, config.Backend)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.GetTimeout())
	defer cancel()

	pool, err := pgxpool.New(ctx, config.DSN)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("pinging postgres: %w", err)
	}

	ddl := fmt.Sprintf(createTableTemplate, pgx.Identifier{b.tableName}.Sanitize())
	if _, err := pool.Exec(ctx, ddl); err != nil {
		pool.Close()
		return fmt.Errorf("creating table %s: %w", b.tableName, err)
	}

	b.pool = pool
	b.config = config
	b.attached = true
	b.info(logMsgAttached, logAttrTable, b.tableName)
	return nil
}

// Detach closes the connection pool. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.pool.Close()
	b.pool = nil
	b.attached = false
	b.info(logMsgDetached, logAttrTable, b.tableName)
	return nil
}

// Get returns the native value stored under key.
func (b *Backend) Get(key string) (any, bool, error) {
	if key == "" {
		return nil, false, types.ErrInvalidKey
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, false, types.ErrDetached
	}

	query, _, err := goqu.Dialect(dialectPostgres).
		From(b.tableName).
		Select(goqu.Cast(goqu.C(colValue), "TEXT")).
		Where(goqu.Ex{colKey: key}).
		ToSQL()
	if err != nil {
		b.errorf(logMsgBuildQueryFailed, err)
		return nil, false, fmt.Errorf("building select: %w", err)
	}

	ctx, cancel := b.callContext()
	defer cancel()

	start := b.now()
	var raw string
	err = b.pool.QueryRow(ctx, query).Scan(&raw)
	b.logSQL(query, start)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading slot %s: %w", key, err)
	}

	v, err := wire.Decode([]byte(raw))
	if err != nil {
		b.warn(logMsgSlotCorrupt, logAttrKey, key, logAttrError, err.Error())
		return nil, false, fmt.Errorf("decoding slot %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value. A nil value
// removes the slot.
func (b *Backend) Set(key string, value any) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	if value == nil {
		return b.Remove(key)
	}

	data, kind, err := wire.Encode(value)
	if err != nil {
		return err
	}

	query, _, err := goqu.Dialect(dialectPostgres).
		Insert(b.tableName).
		Rows(goqu.Record{
			colKey:       key,
			colKind:      kind.String(),
			colValue:     goqu.L(castJsonb, string(data)),
			colUpdatedAt: b.now().UTC(),
		}).
		OnConflict(goqu.DoUpdate(colKey, goqu.Record{
			colKind:      goqu.L(excludedKind),
			colValue:     goqu.L(excludedValue),
			colUpdatedAt: goqu.L(excludedUpdatedAt),
		})).
		ToSQL()
	if err != nil {
		b.errorf(logMsgBuildQueryFailed, err)
		return fmt.Errorf("building upsert: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	ctx, cancel := b.callContext()
	defer cancel()

	start := b.now()
	if _, err := b.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	b.logSQL(query, start)
	b.debug(logMsgSlotWritten, logAttrKey, key, logAttrKind, kind.String())
	return nil
}

// Remove deletes the slot for key.
func (b *Backend) Remove(key string) error {
	if key == "" {
		return types.ErrInvalidKey
	}

	query, _, err := goqu.Dialect(dialectPostgres).
		Delete(b.tableName).
		Where(goqu.Ex{colKey: key}).
		ToSQL()
	if err != nil {
		b.errorf(logMsgBuildQueryFailed, err)
		return fmt.Errorf("building delete: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	ctx, cancel := b.callContext()
	defer cancel()

	start := b.now()
	if _, err := b.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("deleting slot %s: %w", key, err)
	}
	b.logSQL(query, start)
	b.debug(logMsgSlotRemoved, logAttrKey, key)
	return nil
}

// Keys returns every slot name in ascending order.
func (b *Backend) Keys() ([]string, error) {
	query, _, err := goqu.Dialect(dialectPostgres).
		From(b.tableName).
		Select(colKey).
		Order(goqu.I(colKey).Asc()).
		ToSQL()
	if err != nil {
		b.errorf(logMsgBuildQueryFailed, err)
		return nil, fmt.Errorf("building key listing: %w", err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	ctx, cancel := b.callContext()
	defer cancel()

	start := b.now()
	rows, err := b.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning keys: %w", err)
	}
	b.logSQL(query, start)
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

func (b *Backend) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.config.GetTimeout())
}

func (b *Backend) logSQL(query string, start time.Time) {
	b.debug(logMsgSQLExecuted, logAttrQuery, query, logAttrDurationMS, b.now().Sub(start).Milliseconds())
}

func (b *Backend) debug(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}

func (b *Backend) info(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}

func (b *Backend) warn(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Warn(msg, args...)
	}
}

func (b *Backend) errorf(msg string, err error) {
	if b.logger != nil {
		b.logger.Error(msg, logAttrError, err.Error())
	}
}
