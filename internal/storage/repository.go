// Package storage persists analysis results to a relational backend.
//
// Backends register themselves under a kind string from an init() function;
// the CLI selects one via New. The core analysis never depends on this
// package — export is an optional last step after reporting.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Config selects and configures a backend.
//
// Kind must match a registered backend ("sqlite", "postgres", "mssql").
// DSN validation is backend-specific.
type Config struct {
	Kind string
	DSN  string
}

// Report is the flattened analysis result a backend persists. Decimal
// quantities travel as their exact string form; backends store them in text
// columns so no precision is lost on the way in or out.
type Report struct {
	Dataset  string
	RowCount int
	Columns  []ColumnProfile
	Groups   []GroupRow
}

// ColumnProfile is one numeric column's statistics.
type ColumnProfile struct {
	Column string
	Sum    string
	Avg    string
	Min    string
	Max    string
	Count  int
}

// GroupRow is one grouped-aggregation partition.
type GroupRow struct {
	GroupColumn string
	ValueColumn string
	Key         string
	Sum         string
	Count       int
}

// Repository is the backend-agnostic persistence interface.
type Repository interface {
	// SaveReport creates the result tables if needed and writes one report.
	// Implementations should be transactional: a failed save leaves no
	// partial rows behind.
	SaveReport(ctx context.Context, rep Report) error

	// Close releases backend resources. Treat as "call once".
	Close()
}

type factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]factory{}
)

// Register registers a backend under a kind. Call from an init() function in
// the backend package. Registering an empty kind, a nil factory, or the same
// kind twice panics — failing fast beats ambiguous backend selection.
func Register(kind string, f factory) {
	mu.Lock()
	defer mu.Unlock()

	if kind == "" {
		panic("storage: Register called with empty kind")
	}
	if f == nil {
		panic("storage: Register called with nil factory")
	}
	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("storage: factory already registered for kind=%q", kind))
	}

	factories[kind] = f
}

// New constructs a Repository for the configured backend kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	if cfg.Kind == "" {
		return nil, fmt.Errorf("storage: missing Kind")
	}

	mu.RLock()
	f := factories[cfg.Kind]
	mu.RUnlock()

	if f == nil {
		return nil, fmt.Errorf("unsupported storage kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}
