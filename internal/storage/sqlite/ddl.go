package sqlite

import (
	"context"
	"fmt"
	"strings"

	"vgsales/internal/schema"
	"vgsales/internal/storage"
)

// sqlType maps a schema kind onto a SQLite storage class.
func sqlType(k schema.Kind) string {
	switch k {
	case schema.KindInt, schema.KindYear:
		return "INTEGER"
	case schema.KindFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

// bootstrapDDL drops and recreates the raw staging table (all TEXT) and the
// typed final table for a fresh run.
func bootstrapDDL(ctx context.Context, repo storage.Repository, table string) error {
	raw := schema.RawTable(table)

	rawCols := make([]string, len(schema.Base))
	for i, f := range schema.Base {
		rawCols[i] = f.Name + " TEXT"
	}

	finalCols := make([]string, 0, len(schema.Base)+len(schema.Rollups))
	for _, f := range schema.ExportFields() {
		finalCols = append(finalCols, f.Name+" "+sqlType(f.Kind))
	}

	stmts := []string{
		"DROP TABLE IF EXISTS " + raw,
		fmt.Sprintf("CREATE TABLE %s (%s)", raw, strings.Join(rawCols, ", ")),
		"DROP TABLE IF EXISTS " + table,
		fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(finalCols, ", ")),
	}
	for _, s := range stmts {
		if err := repo.Exec(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
