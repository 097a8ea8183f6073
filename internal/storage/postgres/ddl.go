package postgres

import (
	"context"
	"fmt"
	"strings"

	"vgsales/internal/schema"
	"vgsales/internal/storage"
)

// sqlType maps a schema kind onto a Postgres column type.
func sqlType(k schema.Kind) string {
	switch k {
	case schema.KindInt, schema.KindYear:
		return "integer"
	case schema.KindFloat:
		return "double precision"
	default:
		return "text"
	}
}

// bootstrapDDL drops and recreates the raw staging table (all text) and the
// typed final table for a fresh run.
func bootstrapDDL(ctx context.Context, repo storage.Repository, table string) error {
	raw := schema.RawTable(table)

	rawCols := make([]string, len(schema.Base))
	for i, f := range schema.Base {
		rawCols[i] = f.Name + " text"
	}

	var finalCols []string
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
