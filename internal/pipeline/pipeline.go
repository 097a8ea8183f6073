// Package pipeline wires the whole sales workflow end to end: ingest the
// source CSV, stage the raw rows, run the correction chain, persist the
// corrected table, export the cleaned CSV, and run the report battery.
//
// Execution is deliberately sequential. Each stage consumes the full output
// of the previous one; the correction semantics (rank reassignment, rollup
// joins) are defined over the complete batch, so there is nothing to gain
// from streaming rows through the stages.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"vgsales/internal/config"
	"vgsales/internal/datasource"
	"vgsales/internal/datasource/file"
	"vgsales/internal/exporter"
	"vgsales/internal/metrics"
	"vgsales/internal/parser"
	csvparser "vgsales/internal/parser/csv"
	"vgsales/internal/report"
	"vgsales/internal/rollup"
	"vgsales/internal/schema"
	"vgsales/internal/storage"
	"vgsales/internal/transformer"
	"vgsales/internal/transformer/builtin"
	"vgsales/pkg/records"
)

// Summary reports what a run did. All counts are row counts except
// ExportDigest, which is the xxh3 digest of the exported file.
type Summary struct {
	Parsed       int
	ParseErrors  int
	Dropped      int
	Stored       int
	Exported     int
	ExportDigest uint64
}

// Function variables used to introduce test seams. In production these point
// to real implementations; tests can override them.
var (
	newRepositoryFn = func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return storage.New(ctx, cfg)
	}

	openSourceFn = openSource
)

// Run executes one full workflow run for the given pipeline config.
func Run(ctx context.Context, p config.Pipeline) (*Summary, error) {
	job := p.Job
	sum := &Summary{}

	// Ingest.
	start := time.Now()
	recs, skipped, err := ingest(ctx, p)
	metrics.RecordStep(job, "ingest", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	sum.Parsed = len(recs)
	sum.ParseErrors = skipped
	metrics.RecordRow(job, "parsed", int64(len(recs)))
	metrics.RecordRow(job, "parse_errors", int64(skipped))
	log.Printf("ingest: %d rows parsed, %d skipped", len(recs), skipped)

	// Storage bootstrap. Tables are dropped and recreated so a rerun fully
	// replaces the previous run's data.
	repo, err := newRepositoryFn(ctx, storage.Config{
		Kind:  p.Storage.Kind,
		DSN:   p.Storage.DB.DSN,
		Table: p.Storage.DB.Table,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	defer repo.Close()
	if err := storage.EnsureTables(ctx, p.Storage.Kind, repo, p.Storage.DB.Table); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Stage the raw rows before any correction touches them. The raw table
	// is the audit trail for the corrected one.
	start = time.Now()
	err = stageRaw(ctx, repo, p.Storage.DB.Table, recs)
	metrics.RecordStep(job, "stage", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("stage: %w", err)
	}

	// Correct.
	start = time.Now()
	recs = correctionChain().Apply(recs)
	for _, ru := range rollup.ForSchema() {
		recs = ru.Apply(recs)
	}
	metrics.RecordStep(job, "correct", nil, time.Since(start))
	sum.Dropped = sum.Parsed - len(recs)
	metrics.RecordRow(job, "dropped", int64(sum.Dropped))
	log.Printf("correct: %d rows kept, %d dropped", len(recs), sum.Dropped)

	// Persist the corrected table.
	start = time.Now()
	n, err := persist(ctx, repo, p.Storage.DB.Table, recs)
	metrics.RecordStep(job, "persist", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}
	sum.Stored = int(n)
	metrics.RecordRow(job, "stored", n)

	// Export.
	start = time.Now()
	exp := &exporter.Exporter{Repo: repo, Table: p.Storage.DB.Table}
	exported, digest, err := exp.Write(ctx, p.Export.Path)
	metrics.RecordStep(job, "export", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	sum.Exported = exported
	sum.ExportDigest = digest
	metrics.RecordRow(job, "exported", int64(exported))
	log.Printf("export: %d rows to %s (digest %x)", exported, p.Export.Path, digest)

	// Report.
	if p.Report.Enabled {
		start = time.Now()
		r := &report.Runner{
			Repo:      repo,
			Table:     p.Storage.DB.Table,
			OutputDir: p.Report.OutputDir,
			Charts:    p.Report.Charts,
			Job:       job,
		}
		err = r.Run(ctx)
		metrics.RecordStep(job, "report", err, time.Since(start))
		if err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}
	}

	return sum, nil
}

// openSource resolves the configured source kind to a datasource.
func openSource(p config.Pipeline) (datasource.Source, error) {
	switch p.Source.Kind {
	case "file":
		return file.NewLocal(p.Source.File.Path), nil
	default:
		return nil, fmt.Errorf("unsupported source.kind=%s", p.Source.Kind)
	}
}

// newParser resolves the configured parser kind to an implementation.
func newParser(p config.Pipeline) (parser.Parser, error) {
	switch p.Parser.Kind {
	case "", "csv":
		headerMap := schema.HeaderMap()
		for k, v := range p.Parser.Options.StringMap("header_map") {
			headerMap[k] = v
		}
		return csvparser.NewParser(csvparser.Options{
			HasHeader:      p.Parser.Options.Bool("has_header", true),
			Comma:          p.Parser.Options.Rune("comma", ','),
			TrimSpace:      p.Parser.Options.Bool("trim_space", true),
			ExpectedFields: p.Parser.Options.Int("expected_fields", len(schema.Base)),
			HeaderMap:      headerMap,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported parser.kind=%s", p.Parser.Kind)
	}
}

// ingest opens the source and parses it into raw records keyed by canonical
// field names.
func ingest(ctx context.Context, p config.Pipeline) ([]records.Record, int, error) {
	src, err := openSourceFn(p)
	if err != nil {
		return nil, 0, err
	}
	prs, err := newParser(p)
	if err != nil {
		return nil, 0, err
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()
	return prs.Parse(rc)
}

// correctionChain builds the fixed transform sequence of the correction
// stage: normalize, cast, drop incomplete rows, recompute the global total,
// reassign ranks.
func correctionChain() transformer.Chain {
	var required []string
	for _, f := range schema.Base {
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return transformer.Chain{
		builtin.Normalize{},
		builtin.CoerceForSchema(),
		builtin.Require{Fields: required},
		builtin.SumInto{Target: "global_sales", Sources: schema.RegionalSales},
		builtin.DenseRank{By: "global_sales", Target: "rank", Descending: true},
	}
}

// stageRaw copies the uncorrected records into the raw staging table. Values
// are stored as text, exactly as parsed.
func stageRaw(ctx context.Context, repo storage.Repository, table string, recs []records.Record) error {
	cols := schema.BaseColumns()
	rows := make([][]any, len(recs))
	for i, r := range recs {
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = r[c]
		}
		rows[i] = row
	}
	_, err := repo.CopyFrom(ctx, schema.RawTable(table), cols, rows)
	return err
}

// persist copies the corrected records into the final table in canonical
// column order.
func persist(ctx context.Context, repo storage.Repository, table string, recs []records.Record) (int64, error) {
	cols := schema.ExportColumns()
	rows := make([][]any, len(recs))
	for i, r := range recs {
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = r[c]
		}
		rows[i] = row
	}
	return repo.CopyFrom(ctx, table, cols, rows)
}
