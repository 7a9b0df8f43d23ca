// Package sqlite implements the SQLite storage backend for shelf.
// This file holds the schema DDL.
package sqlite

// Schema DDL. Every slot is one row; value holds the tagged JSON encoding
// from internal/wire and kind repeats the top-level kind for listing.
const (
	createSlots = `CREATE TABLE IF NOT EXISTS slots (
    key TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	idxSlotsKind = `CREATE INDEX IF NOT EXISTS idx_slots_kind ON slots(kind);`
)

// Connection pragmas applied on Attach.
const (
	pragmaBusyTimeout = `PRAGMA busy_timeout = 5000;`
	pragmaJournalWAL  = `PRAGMA journal_mode = WAL;`
)

// schemaDDL lists all statements executed on Attach, in order.
var schemaDDL = []string{
	pragmaBusyTimeout,
	pragmaJournalWAL,
	createSlots,
	idxSlotsKind,
}

// Slot queries.
const (
	selectSlot = `SELECT value FROM slots WHERE key = ?`
	upsertSlot = `INSERT INTO slots (key, kind, value, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET kind = excluded.kind, value = excluded.value, updated_at = excluded.updated_at`
	deleteSlot  = `DELETE FROM slots WHERE key = ?`
	selectKeys  = `SELECT key FROM slots ORDER BY key ASC`
	selectSlots = `SELECT key, value FROM slots ORDER BY key ASC`
)

// dbFileName is the database file created inside Config.DataDir.
const dbFileName = "shelf.db"
