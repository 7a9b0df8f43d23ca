package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shelf/internal/wire"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	logMsgAttached     = "sqlite backend attached"
	logMsgDetached     = "sqlite backend detached"
	logMsgSlotWritten  = "slot written"
	logMsgSlotRemoved  = "slot removed"
	logMsgSlotCorrupt  = "slot holds a malformed value"
	logMsgSkippedLine  = "skipped malformed dump line"
	logMsgDumped       = "slots dumped"
	logMsgLoaded       = "slots loaded"
	logAttrPath        = "path"
	logAttrKey         = "key"
	logAttrKind        = "kind"
	logAttrError       = "error"
	logAttrLine        = "line"
	logAttrRecordCount = "records"
)

var _ types.Backend = (*Backend)(nil)

// Logger receives backend diagnostics. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Backend implements types.Backend on a SQLite database file inside the
// configured data directory. The database is the source of truth; slots
// survive Detach and process restarts.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   Logger
	now      func() time.Time
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger for the Backend.
func WithLogger(logger Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(options ...Option) *Backend {
	b := &Backend{now: time.Now}
	for _, option := range options {
		option(b)
	}
	return b
}

// Attach opens (or creates) the database in config.DataDir and applies the
// schema. Creates DataDir if it does not exist.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendSQLite {
		return fmt.Errorf("%w: %s is not sqlite", types.ErrBackendUnknown, config.Backend)
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.config.DataDir = dataDir
	b.attached = true
	b.debug(logMsgAttached, logAttrPath, dbPath)
	return nil
}

// Detach closes the database. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	b.db = nil
	b.attached = false
	b.debug(logMsgDetached)
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

	var raw string
	err := b.db.QueryRow(selectSlot, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
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

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	return b.upsertLocked(b.db, key, kind, data)
}

// Remove deletes the slot for key.
func (b *Backend) Remove(key string) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	if _, err := b.db.Exec(deleteSlot, key); err != nil {
		return fmt.Errorf("deleting slot %s: %w", key, err)
	}
	b.debug(logMsgSlotRemoved, logAttrKey, key)
	return nil
}

// Keys returns every slot name in ascending order.
func (b *Backend) Keys() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.Query(selectKeys)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating keys: %w", err)
	}
	return keys, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// upsertLocked writes one encoded slot. The caller must hold b.mu.
func (b *Backend) upsertLocked(ex execer, key string, kind types.Kind, data []byte) error {
	updatedAt := b.now().UTC().Format(time.RFC3339Nano)
	if _, err := ex.Exec(upsertSlot, key, kind.String(), string(data), updatedAt); err != nil {
		return fmt.Errorf("writing slot %s: %w", key, err)
	}
	b.debug(logMsgSlotWritten, logAttrKey, key, logAttrKind, kind.String())
	return nil
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
