package mysql

import (
	"context"
	"fmt"
	"strings"

	"vgsales/internal/schema"
	"vgsales/internal/storage"
)

// sqlType maps a schema kind onto a MySQL column type. Text keys are sized
// VARCHARs so they stay indexable.
func sqlType(k schema.Kind) string {
	switch k {
	case schema.KindInt, schema.KindYear:
		return "INT"
	case schema.KindFloat:
		return "DOUBLE"
	default:
		return "VARCHAR(255)"
	}
}

// bootstrapDDL drops and recreates the raw staging table and the typed final
// table for a fresh run.
func bootstrapDDL(ctx context.Context, repo storage.Repository, table string) error {
	raw := schema.RawTable(table)

	// Identifiers are ANSI-quoted; the repository enables ANSI_QUOTES on
	// its session ("rank" is reserved in MySQL 8).
	rawCols := make([]string, len(schema.Base))
	for i, f := range schema.Base {
		rawCols[i] = `"` + f.Name + `" TEXT`
	}

	var finalCols []string
	for _, f := range schema.ExportFields() {
		finalCols = append(finalCols, `"`+f.Name+`" `+sqlType(f.Kind))
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
