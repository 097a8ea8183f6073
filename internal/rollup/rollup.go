// Package rollup computes denormalized group totals. A Rollup groups the
// batch on one key, sums the regional sales columns per group, derives the
// group total, and joins that total back onto every row sharing the key as a
// new column. The same transform is instantiated once per grouping key
// (name, publisher, platform, genre) instead of duplicating the
// group/sum/join block four times.
package rollup

import (
	"vgsales/internal/schema"
	"vgsales/pkg/records"
)

// Rollup attaches a per-group total column to each record.
//
// Each application adds exactly one column; the row count and all previously
// computed columns are left untouched. Rows whose key is null, or whose key
// has no computed group (which cannot happen when the totals are derived
// from the same batch), receive a nil total rather than failing the join.
type Rollup struct {
	// Key is the grouping field, e.g. "publisher".
	Key string

	// Target is the derived column name, e.g. "publisher_total_sales".
	Target string

	// Sources are the measure columns summed per group. When empty, the
	// four regional sales columns are used.
	Sources []string
}

// ForSchema returns the four rollups of the dataset in join order.
func ForSchema() []Rollup {
	out := make([]Rollup, len(schema.RollupKeys))
	for i, rk := range schema.RollupKeys {
		out[i] = Rollup{Key: rk.Key, Target: rk.Target}
	}
	return out
}

// Apply implements transformer.Transformer.
func (ru Rollup) Apply(in []records.Record) []records.Record {
	sources := ru.Sources
	if len(sources) == 0 {
		sources = schema.RegionalSales
	}

	// Group pass: sum each measure over all rows sharing the key, then
	// derive the group total as the sum of those sums.
	totals := make(map[string]float64)
	for _, r := range in {
		if r.IsNull(ru.Key) {
			continue
		}
		key := r.String(ru.Key)
		for _, src := range sources {
			if v, ok := r.Float(src); ok {
				totals[key] += v
			}
		}
	}

	// Join pass: attach the group total to every member row.
	for _, r := range in {
		if r.IsNull(ru.Key) {
			r[ru.Target] = nil
			continue
		}
		if total, ok := totals[r.String(ru.Key)]; ok {
			r[ru.Target] = total
		} else {
			r[ru.Target] = nil
		}
	}
	return in
}
