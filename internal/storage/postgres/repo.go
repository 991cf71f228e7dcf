// Package postgres implements storage.Repository over a pgx connection pool.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tablescan/internal/storage"
)

type repo struct {
	pool *pgxpool.Pool
}

func init() {
	storage.Register("postgres", New)
}

// New connects to Postgres using the DSN (URL or keyword form).
func New(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgx ping: %w", err)
	}
	return &repo{pool: pool}, nil
}

func (r *repo) Close() { r.pool.Close() }

// Decimal statistics are stored as TEXT to preserve exact digits; callers
// that need arithmetic in SQL can cast to NUMERIC losslessly.
const createProfileSQL = `
CREATE TABLE IF NOT EXISTS table_profile (
	dataset     TEXT NOT NULL,
	column_name TEXT NOT NULL,
	sum_value   TEXT NOT NULL,
	avg_value   TEXT NOT NULL,
	min_value   TEXT NOT NULL,
	max_value   TEXT NOT NULL,
	value_count INTEGER NOT NULL,
	row_count   INTEGER NOT NULL
)`

const createGroupSQL = `
CREATE TABLE IF NOT EXISTS group_stats (
	dataset      TEXT NOT NULL,
	group_column TEXT NOT NULL,
	value_column TEXT NOT NULL,
	group_key    TEXT NOT NULL,
	sum_value    TEXT NOT NULL,
	value_count  INTEGER NOT NULL
)`

// SaveReport writes the report inside one transaction.
func (r *repo) SaveReport(ctx context.Context, rep storage.Report) error {
	if _, err := r.pool.Exec(ctx, createProfileSQL); err != nil {
		return fmt.Errorf("create table_profile: %w", err)
	}
	if _, err := r.pool.Exec(ctx, createGroupSQL); err != nil {
		return fmt.Errorf("create group_stats: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertReport(ctx, tx, rep); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertReport(ctx context.Context, tx pgx.Tx, rep storage.Report) error {
	for _, c := range rep.Columns {
		_, err := tx.Exec(ctx,
			`INSERT INTO table_profile (dataset, column_name, sum_value, avg_value, min_value, max_value, value_count, row_count)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			rep.Dataset, c.Column, c.Sum, c.Avg, c.Min, c.Max, c.Count, rep.RowCount)
		if err != nil {
			return fmt.Errorf("insert table_profile %s: %w", c.Column, err)
		}
	}

	for _, g := range rep.Groups {
		_, err := tx.Exec(ctx,
			`INSERT INTO group_stats (dataset, group_column, value_column, group_key, sum_value, value_count)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			rep.Dataset, g.GroupColumn, g.ValueColumn, g.Key, g.Sum, g.Count)
		if err != nil {
			return fmt.Errorf("insert group_stats %s: %w", g.Key, err)
		}
	}
	return nil
}
