package prefs

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var _ Backend = &SQLiteBackend{}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS prefs (
	key TEXT PRIMARY KEY,
	kind INTEGER NOT NULL,
	int_value INTEGER NOT NULL DEFAULT 0,
	float_value REAL NOT NULL DEFAULT 0,
	string_value TEXT NOT NULL DEFAULT '',
	updated_at INTEGER NOT NULL
);`

// SQLiteBackend keeps prefs in a single SQLite table on the device.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens (and creates if missing) the database at path.
func NewSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Load(ctx context.Context) (map[string]Value, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT key, kind, int_value, float_value, string_value FROM prefs`)
	if err != nil {
		return nil, fmt.Errorf("failed to query prefs: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]Value)
	for rows.Next() {
		var key string
		var v Value
		if err := rows.Scan(&key, &v.Kind, &v.Int, &v.Float, &v.String); err != nil {
			return nil, fmt.Errorf("failed to scan pref: %w", err)
		}
		entries[key] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prefs: %w", err)
	}
	return entries, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, upserts map[string]Value, deletes []string) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()
	for key, v := range upserts {
		q := `
		INSERT OR REPLACE INTO prefs (key, kind, int_value, float_value, string_value, updated_at)
		VALUES (?, ?, ?, ?, ?, ?);
		`
		if _, err := tx.ExecContext(ctx, q, key, v.Kind, v.Int, v.Float, v.String, now); err != nil {
			return fmt.Errorf("failed to upsert pref %s: %w", key, err)
		}
	}
	for _, key := range deletes {
		if _, err := tx.ExecContext(ctx, `DELETE FROM prefs WHERE key = ?`, key); err != nil {
			return fmt.Errorf("failed to delete pref %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Close(ctx context.Context) error {
	return b.db.Close()
}
