// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql. It is the default engine for the pipeline: the database is a
// single local file (or in-memory for tests), batched INSERTs run inside a
// transaction, and the report catalog queries run directly against it.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // cgo-free driver; alternative: github.com/mattn/go-sqlite3

	"vgsales/internal/storage"
)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, Config{DSN: cfg.DSN})
	})
	storage.RegisterDDL("sqlite", bootstrapDDL)
}

// Config holds SQLite repository configuration.
type Config struct {
	// DSN is passed directly to database/sql; for example:
	//
	//	"file:vgsales.db?cache=shared"
	//	"vgsales.db"
	//	":memory:"
	DSN string
}

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// NewRepository opens a SQLite connection using the provided DSN and pings
// it to fail fast on an unusable path.
func NewRepository(ctx context.Context, cfg Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	// The whole run uses one logical connection; keeping the pool at one
	// also makes ":memory:" databases behave (each new conn would otherwise
	// see a fresh empty database).
	db.SetMaxOpenConns(1)

	return &Repository{db: db}, nil
}

// CopyFrom inserts the given rows into table using a single transaction and
// a prepared INSERT statement. It returns the number of rows inserted.
func (r *Repository) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: insert: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, nil
}

// Exec executes an arbitrary SQL statement (typically DDL).
func (r *Repository) Exec(ctx context.Context, sqlText string) error {
	if strings.TrimSpace(sqlText) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sqlText); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

// Query runs a read statement and materializes the full result.
func (r *Repository) Query(ctx context.Context, sqlText string) (*storage.Result, error) {
	rows, err := r.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query: %w", err)
	}
	defer rows.Close()

	res, err := storage.ScanAll(rows)
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan: %w", err)
	}
	return res, nil
}

// Close closes the underlying database handle.
func (r *Repository) Close() { _ = r.db.Close() }
