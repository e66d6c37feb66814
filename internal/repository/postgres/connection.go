package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateConnectionPool creates a pgx connection pool and verifies the
// connection with a ping.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the notes table if it does not exist. The table name
// is interpolated before the SQL is sent, so each environment prefix gets its
// own statement.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, table string) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id            UUID PRIMARY KEY,
			content       TEXT NOT NULL DEFAULT '',
			file_name     TEXT NOT NULL,
			creator       TEXT NOT NULL,
			date_added    TIMESTAMPTZ NOT NULL,
			date_modified TIMESTAMPTZ NOT NULL
		)
	`, table)

	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
