// audit_backend.go: pluggable storage backends for AuditLogger.
//
// Adapted from the teacher's audit backend architecture: createAuditBackend
// still prefers SQLite and falls back to JSONL on any driver error, a
// ".jsonl" extension still forces the JSONL backend, and sqliteAuditBackend
// still runs its writes inside a transaction with a schema-version table
// for forward migrations. The teacher's audit_events columns (FilePath,
// OldValue, NewValue, ProcessID, ...) are replaced with the stage counters
// AuditEvent actually carries.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

import (
	"database/sql"
	"encoding/json"
	"os"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// auditBackend is the storage contract an AuditLogger flushes into.
type auditBackend interface {
	Write(events []AuditEvent) error
	Close() error
}

// createAuditBackend opens a SQLite-backed store at path, unless path ends
// in ".jsonl" or opening SQLite fails, in which case it falls back to a
// plain JSONL file.
func createAuditBackend(path string) (auditBackend, error) {
	if strings.HasSuffix(path, ".jsonl") {
		return newJSONLAuditBackend(path)
	}
	backend, err := newSQLiteAuditBackend(path)
	if err != nil {
		return newJSONLAuditBackend(path)
	}
	return backend, nil
}

// sqliteAuditBackend stores events in a SQLite database, one row per event.
type sqliteAuditBackend struct {
	db *sql.DB
}

const schemaVersion = 1

func newSQLiteAuditBackend(path string) (*sqliteAuditBackend, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	b := &sqliteAuditBackend{db: db}
	if err := b.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

func (b *sqliteAuditBackend) ensureSchema() error {
	_, err := b.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_info (version INTEGER NOT NULL);
		CREATE TABLE IF NOT EXISTS translate_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp_ns INTEGER NOT NULL,
			level INTEGER NOT NULL,
			mappings INTEGER NOT NULL,
			translations INTEGER NOT NULL,
			parsed INTEGER NOT NULL,
			coerced INTEGER NOT NULL,
			aggregated INTEGER NOT NULL,
			translated INTEGER NOT NULL,
			merged INTEGER NOT NULL,
			err TEXT NOT NULL,
			checksum TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_translate_runs_ts ON translate_runs(timestamp_ns);
	`)
	if err != nil {
		return err
	}
	var count int
	if err := b.db.QueryRow(`SELECT COUNT(*) FROM schema_info`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		_, err = b.db.Exec(`INSERT INTO schema_info (version) VALUES (?)`, schemaVersion)
	}
	return err
}

func (b *sqliteAuditBackend) Write(events []AuditEvent) error {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO translate_runs
			(timestamp_ns, level, mappings, translations, parsed, coerced, aggregated, translated, merged, err, checksum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		_, err := stmt.Exec(e.Timestamp.UnixNano(), int(e.Level), e.Mappings, e.Translations,
			e.Parsed, e.Coerced, e.Aggregated, e.Translated, e.Merged, e.Err, e.Checksum)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (b *sqliteAuditBackend) Close() error {
	return b.db.Close()
}

// jsonlAuditBackend appends one JSON object per line to a plain file.
type jsonlAuditBackend struct {
	mu   sync.Mutex
	file *os.File
}

func newJSONLAuditBackend(path string) (*jsonlAuditBackend, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &jsonlAuditBackend{file: f}, nil
}

func (b *jsonlAuditBackend) Write(events []AuditEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range events {
		line, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if _, err := b.file.Write(append(line, '\n')); err != nil {
			return err
		}
	}
	return nil
}

func (b *jsonlAuditBackend) Close() error {
	return b.file.Close()
}
