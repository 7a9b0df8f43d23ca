// Package sqlite implements the SQLite storage backend for shelf.
// This file provides JSONL dump and load with atomic persistence.
package sqlite

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/shelf/internal/wire"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Dump writes every slot to path as JSONL, one {"key", "value"} record per
// line in key order. The file is replaced atomically.
func (b *Backend) Dump(path string) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return 0, types.ErrDetached
	}

	rows, err := b.db.Query(selectSlots)
	if err != nil {
		return 0, fmt.Errorf("querying slots for dump: %w", err)
	}
	defer rows.Close()

	var records [][]byte
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return 0, fmt.Errorf("scanning slot for dump: %w", err)
		}
		data, err := json.Marshal(slotJSON{Key: key, Value: []byte(value)})
		if err != nil {
			return 0, fmt.Errorf("marshaling slot %s: %w", key, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating slots for dump: %w", err)
	}

	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	b.info(logMsgDumped, logAttrPath, path, logAttrRecordCount, len(records))
	return len(records), nil
}

// Load upserts every slot in the JSONL file at path. Lines that are not
// valid records are skipped. All writes happen in one transaction.
func (b *Backend) Load(path string) (int, error) {
	lines, err := readJSONL(path)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.ErrDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	loaded := 0
	for i, line := range lines {
		var rec slotJSON
		if err := json.Unmarshal(line, &rec); err != nil || rec.Key == "" {
			b.warn(logMsgSkippedLine, logAttrLine, i+1)
			continue
		}
		v, err := wire.Decode(rec.Value)
		if err != nil {
			b.warn(logMsgSkippedLine, logAttrLine, i+1, logAttrError, err.Error())
			continue
		}
		data, kind, err := wire.Encode(v)
		if err != nil {
			return 0, fmt.Errorf("re-encoding slot %s: %w", rec.Key, err)
		}
		if err := b.upsertLocked(tx, rec.Key, kind, data); err != nil {
			return 0, err
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load: %w", err)
	}
	b.info(logMsgLoaded, logAttrPath, path, logAttrRecordCount, loaded)
	return loaded, nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line.
// Malformed lines are skipped.
func readJSONL(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records [][]byte
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, cp)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records [][]byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
