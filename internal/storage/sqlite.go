package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite for persistence.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens a SQLite-backed store.
// The database file and table are auto-created if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store database: %w", err)
	}
	// One writer; also keeps the file handle stable for the watcher.
	db.SetMaxOpenConns(1)

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS kv (
			store_key TEXT PRIMARY KEY NOT NULL,
			value_json BLOB NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create store table: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// Path returns the database file backing the store.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Get retrieves the value stored under key.
func (s *SQLiteStore) Get(key string) ([]byte, bool) {
	var data []byte

	err := s.db.QueryRow(
		"SELECT value_json FROM kv WHERE store_key = ?",
		key,
	).Scan(&data)
	if err != nil {
		// Not found or other error
		return nil, false
	}

	return data, true
}

// Set stores data under key, replacing any previous value.
func (s *SQLiteStore) Set(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO kv (store_key, value_json, updated_at)
		 VALUES (?, ?, ?)`,
		key, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to set store entry: %w", err)
	}

	return nil
}

// Delete removes the value stored under key.
func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE store_key = ?", key); err != nil {
		return fmt.Errorf("failed to delete store entry: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
