// Package sqlite contains the SQLite implementation of the state
// gateway. The whole document persists as a single key-value row, so
// the schema is one table; the interesting part is failure
// classification, which decides whether the store façade degrades or
// retries.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/dayops/internal/ports/secondary"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS state (
	id             TEXT PRIMARY KEY,
	schema_version INTEGER NOT NULL,
	device_id      TEXT NOT NULL,
	payload        TEXT NOT NULL,
	updated_at     INTEGER NOT NULL
);
`

// StateRepository implements secondary.StateGateway with SQLite.
type StateRepository struct {
	db *sql.DB
}

// Open opens (creating if needed) the database file at path and
// returns a ready state repository.
func Open(path string) (*StateRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	return &StateRepository{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Init probes the backend and creates the schema. It reports false
// with a transient error when the database file is locked by another
// process, so the caller can degrade instead of crashing.
func (r *StateRepository) Init(ctx context.Context) (bool, error) {
	if err := r.db.PingContext(ctx); err != nil {
		return false, classify(fmt.Errorf("failed to connect to database: %w", err))
	}
	if _, err := r.db.ExecContext(ctx, schemaSQL); err != nil {
		return false, classify(fmt.Errorf("failed to create schema: %w", err))
	}
	return true, nil
}

// Get retrieves the persisted record under key, or (nil, nil) when no
// record has been written yet.
func (r *StateRepository) Get(ctx context.Context, key string) (*secondary.StateRecord, error) {
	record := &secondary.StateRecord{}
	var payload string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, schema_version, device_id, payload, updated_at FROM state WHERE id = ?",
		key,
	).Scan(&record.ID, &record.SchemaVersion, &record.DeviceID, &payload, &record.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, classify(fmt.Errorf("failed to read state %s: %w", key, err))
	}

	record.Payload = []byte(payload)
	return record, nil
}

// Put upserts the persisted record under its key.
func (r *StateRepository) Put(ctx context.Context, record *secondary.StateRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO state (id, schema_version, device_id, payload, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   schema_version = excluded.schema_version,
		   device_id      = excluded.device_id,
		   payload        = excluded.payload,
		   updated_at     = excluded.updated_at`,
		record.ID, record.SchemaVersion, record.DeviceID, string(record.Payload), record.UpdatedAt,
	)
	if err != nil {
		return classify(fmt.Errorf("failed to write state %s: %w", record.ID, err))
	}
	return nil
}

// Close closes the database connection.
func (r *StateRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// classify wraps lock-contention failures as transient so the store
// façade can offer a retry instead of treating the backend as gone.
func classify(err error) error {
	if err == nil {
		return nil
	}
	message := err.Error()
	if strings.Contains(message, "database is locked") ||
		strings.Contains(message, "database table is locked") ||
		strings.Contains(message, "locking protocol") ||
		strings.Contains(message, "busy") {
		return secondary.Transient(err)
	}
	return err
}
