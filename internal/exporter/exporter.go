// Package exporter writes the corrected dataset back to disk as CSV. The
// export is the durable artifact of a run: canonical column order, canonical
// headers, rows ordered by the reassigned rank. A content digest of the
// written bytes lets callers verify that repeated runs over the same input
// produce the same file.
package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"vgsales/internal/schema"
	"vgsales/internal/storage"
)

// Exporter reads the final table and writes the export CSV.
type Exporter struct {
	Repo  storage.Repository
	Table string
}

// Write queries the final table, writes it to path (overwriting any existing
// file), and returns the row count and the xxh3 digest of the file contents.
func (e *Exporter) Write(ctx context.Context, path string) (int, uint64, error) {
	// Identifiers are ANSI-quoted so the statement survives every backend
	// ("rank" is reserved in MySQL 8).
	quoted := make([]string, len(schema.ExportColumns()))
	for i, c := range schema.ExportColumns() {
		quoted[i] = `"` + c + `"`
	}
	res, err := e.Repo.Query(ctx, fmt.Sprintf(`SELECT %s FROM %s ORDER BY "rank"`, strings.Join(quoted, ", "), e.Table))
	if err != nil {
		return 0, 0, fmt.Errorf("export: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, 0, fmt.Errorf("export: %w", err)
		}
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(schema.ExportHeaders()); err != nil {
		return 0, 0, fmt.Errorf("export: header: %w", err)
	}
	for i, row := range res.Rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = formatValue(v)
		}
		if err := w.Write(rec); err != nil {
			return 0, 0, fmt.Errorf("export: row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, 0, fmt.Errorf("export: %w", err)
	}

	data := []byte(buf.String())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, 0, fmt.Errorf("export: %w", err)
	}
	return len(res.Rows), xxh3.Hash(data), nil
}

// formatValue renders a database value for the CSV cell. Integers print
// without a fraction, floats with the shortest round-trip representation,
// NULLs as empty cells.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
