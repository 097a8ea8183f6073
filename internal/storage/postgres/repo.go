// Package postgres implements a Postgres-backed storage.Repository using
// pgx v5. Bulk loads use the native COPY protocol, which is the fastest path
// for the wide final table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"vgsales/internal/storage"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, Config{DSN: cfg.DSN})
	})
	storage.RegisterDDL("postgres", bootstrapDDL)
}

// Config holds Postgres repository configuration.
type Config struct {
	// DSN is the connection string for pgxpool, e.g. "postgresql://...".
	DSN string
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository opens a connection pool for the DSN and pings it so a bad
// DSN fails at startup rather than mid-run.
func NewRepository(ctx context.Context, cfg Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: pool}, nil
}

// CopyFrom bulk-loads rows into table via the COPY protocol.
func (r *Repository) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("postgres: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := r.pool.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return n, fmt.Errorf("postgres: copy: %s (%s)", pgErr.Detail, pgErr.SQLState())
		}
		return n, fmt.Errorf("postgres: copy: %w", err)
	}
	return n, nil
}

// Exec executes an arbitrary SQL statement (typically DDL).
func (r *Repository) Exec(ctx context.Context, sqlText string) error {
	if strings.TrimSpace(sqlText) == "" {
		return nil
	}
	if _, err := r.pool.Exec(ctx, sqlText); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}

// Query runs a read statement and materializes the full result. Text values
// come back as string and numerics as int64/float64, matching the other
// backends.
func (r *Repository) Query(ctx context.Context, sqlText string) (*storage.Result, error) {
	rows, err := r.pool.Query(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("postgres: query: %w", err)
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	res := &storage.Result{Columns: make([]string, len(fds))}
	for i, fd := range fds {
		res.Columns[i] = fd.Name
	}

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("postgres: scan: %w", err)
		}
		for i, v := range vals {
			switch t := v.(type) {
			case []byte:
				vals[i] = string(t)
			case int16:
				vals[i] = int64(t)
			case int32:
				vals[i] = int64(t)
			case float32:
				vals[i] = float64(t)
			}
		}
		res.Rows = append(res.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows: %w", err)
	}
	return res, nil
}

// Close closes the connection pool.
func (r *Repository) Close() { r.pool.Close() }
