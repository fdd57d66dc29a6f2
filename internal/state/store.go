// Package state provides SQLite-backed durable key/value state: watermark
// counters and feature flags that must survive process restarts.
//
// Reads never fail the caller — a missing row, an unreadable file, or a
// malformed value falls back to the caller's default. Writes are single-row
// upserts, atomic per key.
package state

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Store provides access to the SQLite state database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a state database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	// WAL keeps readers unblocked while the monitor writes watermarks.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory store for testing.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// HealthCheck runs a trivial query to verify the store is usable.
func (s *Store) HealthCheck() error {
	var n int
	return s.db.QueryRow("SELECT 1").Scan(&n)
}

// GetInt64 returns the stored integer for key, or def when the key is absent
// or unreadable.
func (s *Store) GetInt64(key string, def int64) int64 {
	raw, ok := s.get(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// SetInt64 stores an integer value for key.
func (s *Store) SetInt64(key string, value int64) error {
	return s.set(key, strconv.FormatInt(value, 10))
}

// GetBool returns the stored boolean for key, or def when the key is absent
// or unreadable.
func (s *Store) GetBool(key string, def bool) bool {
	raw, ok := s.get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

// SetBool stores a boolean value for key.
func (s *Store) SetBool(key string, value bool) error {
	return s.set(key, strconv.FormatBool(value))
}

func (s *Store) get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow("SELECT value FROM state WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("set state %q: %w", key, err)
	}
	return nil
}
