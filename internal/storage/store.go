// Package storage persists projects, notes, tasks, and planner
// settings in SQLite.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store wraps the SQLite database.
type Store struct {
	path string
	db   *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	color      TEXT,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	raw_text   TEXT NOT NULL,
	project_id TEXT REFERENCES projects(id) ON DELETE SET NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	details          TEXT,
	project_id       TEXT REFERENCES projects(id) ON DELETE SET NULL,
	source_note_id   TEXT REFERENCES notes(id) ON DELETE SET NULL,
	priority         INTEGER NOT NULL,
	estimate_minutes INTEGER NOT NULL,
	due_date         TEXT,
	status           TEXT NOT NULL DEFAULT 'OPEN',
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_status  ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);

CREATE TABLE IF NOT EXISTS settings (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	mock_ai       INTEGER NOT NULL,
	daily_minutes INTEGER NOT NULL,
	workdays      TEXT NOT NULL
);
`

// NewStore creates a store for the given database path. The path
// ":memory:" opens an in-memory database, which tests rely on.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init opens the database, creating the parent directory and the
// schema as needed.
func (s *Store) Init() error {
	if s.path != ":memory:" {
		dir := filepath.Dir(s.path)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps the foreign-keys pragma in effect for
	// every query and keeps an in-memory database from fragmenting
	// across the pool.
	db.SetMaxOpenConns(1)
	s.db = db

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
