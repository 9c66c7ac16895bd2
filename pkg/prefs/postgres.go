package prefs

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workbitai/oopsworld/pkg/log"
)

var _ Backend = &PostgresBackend{}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS player_prefs (
	profile TEXT NOT NULL,
	key TEXT NOT NULL,
	kind SMALLINT NOT NULL,
	int_value BIGINT NOT NULL DEFAULT 0,
	float_value DOUBLE PRECISION NOT NULL DEFAULT 0,
	string_value TEXT NOT NULL DEFAULT '',
	updated_at BIGINT NOT NULL,
	PRIMARY KEY (profile, key)
);`

// PostgresBackend keeps a copy of one device profile's prefs in Postgres.
type PostgresBackend struct {
	conn    *pgx.Conn
	profile string
}

// NewPostgresBackend connects to the database and scopes every query to profile.
// The caller is responsible for calling Close on the backend.
func NewPostgresBackend(ctx context.Context, connStr string, profile string) (*PostgresBackend, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	var username string
	var database string
	if err := conn.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("unable to query database: %w", err)
	}
	log.Info("Connected to %s as %s", database, username)

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &PostgresBackend{
		conn:    conn,
		profile: profile,
	}, nil
}

func (b *PostgresBackend) Load(ctx context.Context) (map[string]Value, error) {
	q := `
	SELECT key, kind, int_value, float_value, string_value FROM player_prefs WHERE profile = $1;
	`
	rows, err := b.conn.Query(ctx, q, b.profile)
	if err != nil {
		return nil, fmt.Errorf("failed to query prefs: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]Value)
	for rows.Next() {
		var key string
		var kind int16
		var intValue int64
		var v Value
		if err := rows.Scan(&key, &kind, &intValue, &v.Float, &v.String); err != nil {
			return nil, fmt.Errorf("failed to scan pref: %w", err)
		}
		v.Kind = Kind(kind)
		v.Int = int(intValue)
		entries[key] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prefs: %w", err)
	}
	return entries, nil
}

func (b *PostgresBackend) Save(ctx context.Context, upserts map[string]Value, deletes []string) error {
	tx, err := b.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UnixMilli()
	for key, v := range upserts {
		q := `
		INSERT INTO player_prefs (profile, key, kind, int_value, float_value, string_value, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (profile, key) DO UPDATE SET kind = $3, int_value = $4, float_value = $5, string_value = $6, updated_at = $7;
		`
		if _, err := tx.Exec(ctx, q, b.profile, key, int16(v.Kind), int64(v.Int), v.Float, v.String, now); err != nil {
			return fmt.Errorf("failed to upsert pref %s: %w", key, err)
		}
	}
	for _, key := range deletes {
		if _, err := tx.Exec(ctx, `DELETE FROM player_prefs WHERE profile = $1 AND key = $2`, b.profile, key); err != nil {
			return fmt.Errorf("failed to delete pref %s: %w", key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Close(ctx context.Context) error {
	return b.conn.Close(ctx)
}
