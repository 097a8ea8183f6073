package report

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"vgsales/internal/chart"
	"vgsales/internal/metrics"
	"vgsales/internal/storage"
)

// Runner executes the catalog against a populated final table.
type Runner struct {
	Repo  storage.Repository
	Table string

	// Job labels per-query metrics.
	Job string

	// OutputDir receives one HTML file per charted query. Charts are
	// skipped when Charts is false or OutputDir is empty.
	OutputDir string
	Charts    bool
}

// Run executes every catalog query in order, logs a summary per query, and
// renders charts. A query error, validation failure, or render failure
// aborts the report.
func (r *Runner) Run(ctx context.Context) error {
	if r.Charts && r.OutputDir != "" {
		if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
			return fmt.Errorf("report: create output dir: %w", err)
		}
	}
	prior := map[string]*storage.Result{}
	for _, q := range Catalog() {
		res, err := r.Repo.Query(ctx, q.Statement(r.Table))
		if err != nil {
			return fmt.Errorf("report %s: %w", q.Name, err)
		}
		prior[q.Name] = res
		metrics.RecordQuery(r.Job, q.Name, int64(len(res.Rows)))
		log.Printf("report %s: %d rows", q.Name, len(res.Rows))
		if q.Validate != nil {
			if err := q.Validate(res); err != nil {
				return fmt.Errorf("report %s: %w", q.Name, err)
			}
		}
		if q.Chart == "" || !r.Charts || r.OutputDir == "" {
			continue
		}
		if err := r.renderChart(q, res, prior); err != nil {
			return fmt.Errorf("report %s: %w", q.Name, err)
		}
	}
	return nil
}

func (r *Runner) renderChart(q Query, res *storage.Result, prior map[string]*storage.Result) error {
	labels, err := columnStrings(res, q.X)
	if err != nil {
		return err
	}
	values, err := columnFloats(res, q.Y)
	if err != nil {
		return err
	}
	path := filepath.Join(r.OutputDir, q.Name+".html")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch q.Chart {
	case chart.KindBar:
		colors, err := itemColors(q, res, prior)
		if err != nil {
			return err
		}
		err = chart.Bar(f, q.Title, labels, values, colors)
		if err != nil {
			return err
		}
	case chart.KindPie:
		if err := chart.Pie(f, q.Title, labels, values); err != nil {
			return err
		}
	case chart.KindLine:
		if err := chart.Line(f, q.Title, labels, values); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown chart kind %q", q.Chart)
	}
	log.Printf("report %s: wrote %s", q.Name, path)
	return f.Close()
}

// itemColors resolves per-bar colors. When ColorsFromQuery is set, the
// ColorBy values come from that earlier result, matched by row position.
func itemColors(q Query, res *storage.Result, prior map[string]*storage.Result) ([]string, error) {
	if q.ColorBy == "" {
		return nil, nil
	}
	source := res
	if q.ColorsFromQuery != "" {
		src, ok := prior[q.ColorsFromQuery]
		if !ok {
			return nil, fmt.Errorf("color source query %q has not run", q.ColorsFromQuery)
		}
		source = src
	}
	keys, err := columnStrings(source, q.ColorBy)
	if err != nil {
		return nil, err
	}
	colors := make([]string, len(res.Rows))
	for i := range colors {
		if i < len(keys) {
			colors[i] = q.Colors[keys[i]]
		}
	}
	return colors, nil
}

func columnIndex(res *storage.Result, name string) (int, error) {
	for i, c := range res.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("result has no column %q", name)
}

func columnStrings(res *storage.Result, name string) ([]string, error) {
	idx, err := columnIndex(res, name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(res.Rows))
	for i, row := range res.Rows {
		out[i] = stringValue(row[idx])
	}
	return out, nil
}

func columnFloats(res *storage.Result, name string) ([]float64, error) {
	idx, err := columnIndex(res, name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(res.Rows))
	for i, row := range res.Rows {
		f, err := floatValue(row[idx])
		if err != nil {
			return nil, fmt.Errorf("column %s row %d: %w", name, i, err)
		}
		out[i] = f
	}
	return out, nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func floatValue(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case int:
		return float64(t), nil
	case string:
		return strconv.ParseFloat(t, 64)
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}
