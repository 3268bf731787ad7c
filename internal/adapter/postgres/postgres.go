// Package postgres implements the storage-facing domain interfaces on top of
// a pgx connection pool.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool and verifies connectivity.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connected", "max_conns", poolCfg.MaxConns)
	return pool, nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS records (
		id              BIGINT PRIMARY KEY,
		raw_location    TEXT,
		text            TEXT NOT NULL,
		recorded_at     TIMESTAMPTZ NOT NULL,
		resolved_region TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_resolved_region ON records (resolved_region)`,
	`CREATE TABLE IF NOT EXISTS lexicon (
		word     TEXT PRIMARY KEY,
		polarity TEXT NOT NULL CHECK (polarity IN ('positive', 'negative'))
	)`,
}

// RunMigrations applies the schema statements. Every statement is idempotent,
// so concurrent starts are safe without an advisory lock.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	slog.Info("Migrations applied", "statements", len(migrations))
	return nil
}
