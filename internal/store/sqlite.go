package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/disckocrip/retro-backend/internal/entity"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteMedium stores key-value pairs in a local SQLite file, the on-disk
// analogue of browser local storage. A per-value size quota mirrors the
// storage quota of the original medium.
type SQLiteMedium struct {
	db         *sql.DB
	quotaBytes int
}

// OpenSQLite opens (or creates) the database file and brings the schema up
// to date. quotaBytes <= 0 disables the size quota.
func OpenSQLite(path string, quotaBytes int) (*SQLiteMedium, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}

	// Single-process, single-writer store: one connection is enough and
	// sidesteps SQLITE_BUSY between connections.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := migrateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}

	return &SQLiteMedium{db: db, quotaBytes: quotaBytes}, nil
}

// Get reads a value. ok is false when the key is absent.
func (m *SQLiteMedium) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := m.db.QueryRowContext(ctx, "SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read key %q: %w", key, err)
	}
	return value, true, nil
}

// Put overwrites a value. Values beyond the quota are rejected with an error
// wrapping entity.ErrQuotaExceeded before touching the database.
func (m *SQLiteMedium) Put(ctx context.Context, key, value string) error {
	if m.quotaBytes > 0 && len(value) > m.quotaBytes {
		return fmt.Errorf("%w: value is %d bytes, limit is %d", entity.ErrQuotaExceeded, len(value), m.quotaBytes)
	}

	_, err := m.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (m *SQLiteMedium) Delete(ctx context.Context, key string) error {
	if _, err := m.db.ExecContext(ctx, "DELETE FROM app_state WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (m *SQLiteMedium) Close() error {
	return m.db.Close()
}
