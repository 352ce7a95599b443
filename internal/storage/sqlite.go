package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

const (
	schemaKeyValue = `
CREATE TABLE IF NOT EXISTS kv_store (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

	upsertValueSQL = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`

	selectValueSQL = `SELECT value FROM kv_store WHERE key=?`

	deleteValueSQL = `DELETE FROM kv_store WHERE key=?`
)

// SQLite keeps values in a single-table SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open database. The schema must already exist.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// OpenSQLite opens or creates the database file at path and ensures the schema.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite directory: %w", err)
	}

	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaKeyValue); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return NewSQLite(db), nil
}

func (store *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := store.db.QueryRowContext(ctx, selectValueSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (store *SQLite) Set(ctx context.Context, key string, value []byte) error {
	if _, err := store.db.ExecContext(ctx, upsertValueSQL, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

func (store *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := store.db.ExecContext(ctx, deleteValueSQL, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (store *SQLite) Close() error {
	if store == nil || store.db == nil {
		return nil
	}
	return store.db.Close()
}
