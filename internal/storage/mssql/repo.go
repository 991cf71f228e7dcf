// Package mssql implements storage.Repository for SQL Server.
package mssql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/microsoft/go-mssqldb"

	"tablescan/internal/storage"
)

type repo struct {
	db *sql.DB
}

func init() {
	storage.Register("mssql", New)
}

// New connects using a sqlserver:// DSN.
func New(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	db, err := sql.Open("sqlserver", cfg.DSN)
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

// SQL Server has no CREATE TABLE IF NOT EXISTS; the OBJECT_ID guard is the
// conventional equivalent.
const createProfileSQL = `
IF OBJECT_ID('table_profile', 'U') IS NULL
CREATE TABLE table_profile (
	dataset     NVARCHAR(256) NOT NULL,
	column_name NVARCHAR(256) NOT NULL,
	sum_value   NVARCHAR(64)  NOT NULL,
	avg_value   NVARCHAR(64)  NOT NULL,
	min_value   NVARCHAR(64)  NOT NULL,
	max_value   NVARCHAR(64)  NOT NULL,
	value_count INT NOT NULL,
	row_count   INT NOT NULL
)`

const createGroupSQL = `
IF OBJECT_ID('group_stats', 'U') IS NULL
CREATE TABLE group_stats (
	dataset      NVARCHAR(256) NOT NULL,
	group_column NVARCHAR(256) NOT NULL,
	value_column NVARCHAR(256) NOT NULL,
	group_key    NVARCHAR(512) NOT NULL,
	sum_value    NVARCHAR(64)  NOT NULL,
	value_count  INT NOT NULL
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
			 VALUES (@p1, @p2, @p3, @p4, @p5, @p6, @p7, @p8)`,
			rep.Dataset, c.Column, c.Sum, c.Avg, c.Min, c.Max, c.Count, rep.RowCount)
		if err != nil {
			return fmt.Errorf("insert table_profile %s: %w", c.Column, err)
		}
	}

	for _, g := range rep.Groups {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO group_stats (dataset, group_column, value_column, group_key, sum_value, value_count)
			 VALUES (@p1, @p2, @p3, @p4, @p5, @p6)`,
			rep.Dataset, g.GroupColumn, g.ValueColumn, g.Key, g.Sum, g.Count)
		if err != nil {
			return fmt.Errorf("insert group_stats %s: %w", g.Key, err)
		}
	}

	return tx.Commit()
}
