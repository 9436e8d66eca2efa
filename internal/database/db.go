// Package database keeps an optional SQLite journal of sampler sessions.
// The journal is write-only from the sampler's point of view; it is read
// back only by the report command.
package database

import (
	"database/sql"
	"errors"
	"fmt"

	"pingclock/internal/models"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested session does not exist
var ErrNotFound = errors.New("session not found")

// DB wraps sql.DB with additional methods
type DB struct {
	*sql.DB
}

var _ models.Journal = (*DB)(nil)

// New creates a new database connection
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// WAL lets the report command read while the server writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("database open failed: %w", err)
	}
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA busy_timeout=5000")

	return &DB{db}, nil
}

// Open creates the connection and makes sure the schema exists
func Open(path string) (*DB, error) {
	db, err := New(path)
	if err != nil {
		return nil, err
	}
	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates all necessary tables.
// Timestamps are unix milliseconds.
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS sessions (
        id TEXT PRIMARY KEY,
        host TEXT NOT NULL,
        interval_ms INTEGER NOT NULL,
        started_at INTEGER NOT NULL,
        stopped_at INTEGER
    );

    CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);

    CREATE TABLE IF NOT EXISTS samples (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        session_id TEXT NOT NULL REFERENCES sessions(id),
        captured_at INTEGER NOT NULL,
        success BOOLEAN NOT NULL,
        latency_ms REAL,
        failure TEXT NOT NULL DEFAULT '',
        error_message TEXT
    );

    CREATE INDEX IF NOT EXISTS idx_samples_session ON samples(session_id, captured_at);
    CREATE INDEX IF NOT EXISTS idx_samples_captured ON samples(captured_at);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}
