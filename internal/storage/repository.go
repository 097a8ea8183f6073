// Package storage contains storage-agnostic contracts for the pipeline's
// persistence layer plus a small factory registry. Concrete backends
// (sqlite, postgres, mysql) live in subpackages and register themselves at
// init time; the rest of the application depends only on the Repository
// interface and never imports a database driver directly.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Config holds backend-agnostic connection configuration.
type Config struct {
	// Kind selects the registered backend, e.g. "sqlite".
	Kind string

	// DSN is the backend connection string (file path or URL style,
	// interpreted by the driver).
	DSN string

	// Table is the final table name; the raw staging table name is derived
	// from it.
	Table string
}

// Result is a fully materialized query result: column names in select order
// plus one []any per row. Numeric values arrive as int64/float64 and text as
// string, regardless of backend.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Repository is the minimal storage surface the pipeline needs: bulk load,
// DDL/statement execution, and materialized reads for the report queries.
type Repository interface {
	// CopyFrom bulk-inserts rows (aligned to the columns order) into table
	// and returns the number of rows inserted.
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Exec executes a statement (typically DDL) without results.
	Exec(ctx context.Context, sql string) error

	// Query runs a read-only statement and materializes the full result.
	Query(ctx context.Context, sql string) (*Result, error)

	// Close releases the underlying connection(s).
	Close()
}

// Factory constructs a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a storage kind. It is
// typically called from backend packages' init functions.
func Register(kind string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = f
}

// New opens a Repository for cfg.Kind, or fails when no backend with that
// kind has been registered.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return f(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered backend kinds.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
