package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore keeps scan results in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("db path cannot be empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single writer keeps SQLite from returning SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the scan_results table if it is missing.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS scan_results (
  sid TEXT PRIMARY KEY,
  data BLOB NOT NULL,
  saved_at TIMESTAMP NOT NULL
);`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create scan_results table: %w", err)
	}
	return nil
}

// Load returns the stored result for sid.
func (s *SQLiteStore) Load(ctx context.Context, sid string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM scan_results WHERE sid = ?`, sid).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load %s: %w", sid, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query scan %s: %w", sid, err)
	}
	return data, nil
}

// Save upserts the result stored under sid.
func (s *SQLiteStore) Save(ctx context.Context, sid string, data []byte) error {
	const query = `
INSERT INTO scan_results (sid, data, saved_at)
VALUES (?, ?, ?)
ON CONFLICT (sid)
DO UPDATE SET
  data = EXCLUDED.data,
  saved_at = EXCLUDED.saved_at;
`
	if _, err := s.db.ExecContext(ctx, query, sid, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert scan %s: %w", sid, err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
