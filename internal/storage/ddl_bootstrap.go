package storage

import (
	"context"
	"fmt"
	"sync"
)

// DDLBootstrapper recreates the raw staging table and the final wide table
// for a run, using the backend's own type names. Re-running the pipeline
// replaces prior content, so bootstrappers drop and recreate rather than
// create-if-missing.
type DDLBootstrapper func(ctx context.Context, repo Repository, table string) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) a DDLBootstrapper for the given
// storage kind. It is typically called from backend packages' init functions.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTables locates the DDLBootstrapper for kind and invokes it against
// repo. Callers stay backend-agnostic; they only know the final table name.
func EnsureTables(ctx context.Context, kind string, repo Repository, table string) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage.kind=%q", kind)
	}
	return fn(ctx, repo, table)
}
