// Package sqlite implements storage.Repository on a local SQLite file.
//
// Decimal statistics are stored as TEXT: SQLite would give REAL affinity to
// numeric columns, and round-tripping exact decimals through float64 is
// precisely what the analysis layer avoids.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"tablescan/internal/storage"
)

type repo struct {
	db *sql.DB
}

func init() {
	storage.Register("sqlite", New)
}

// New opens (or creates) the SQLite database named by cfg.DSN.
func New(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &repo{db: db}, nil
}

func (r *repo) Close() { _ = r.db.Close() }

// Column names avoid SQL keywords so the same schema shape works unquoted
// across all three backends.
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
	if _, err := r.db.ExecContext(ctx, createProfileSQL); err != nil {
		return fmt.Errorf("create table_profile: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createGroupSQL); err != nil {
		return fmt.Errorf("create group_stats: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range rep.Columns {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO table_profile (dataset, column_name, sum_value, avg_value, min_value, max_value, value_count, row_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rep.Dataset, c.Column, c.Sum, c.Avg, c.Min, c.Max, c.Count, rep.RowCount)
		if err != nil {
			return fmt.Errorf("insert table_profile %s: %w", c.Column, err)
		}
	}

	for _, g := range rep.Groups {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO group_stats (dataset, group_column, value_column, group_key, sum_value, value_count)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rep.Dataset, g.GroupColumn, g.ValueColumn, g.Key, g.Sum, g.Count)
		if err != nil {
			return fmt.Errorf("insert group_stats %s: %w", g.Key, err)
		}
	}

	return tx.Commit()
}
