package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLite keeps state blobs in a single table of a database file
type SQLite struct {
	db *sql.DB
}

func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		path = "state.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Put(ctx context.Context, k Key, v []float64) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO state (key, payload) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		k.String(), encode(v)); err != nil {
		return fmt.Errorf("SQLite.Put %s: %w", k, err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, k Key) ([]float64, error) {
	var b []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE key = ?`, k.String()).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("SQLite.Get %s: %w", k, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("SQLite.Get %s: %w", k, err)
	}
	return decode(b)
}

func (s *SQLite) Close() error { return s.db.Close() }
