package builtin

import (
	"strconv"
	"strings"

	"vgsales/internal/schema"
	"vgsales/pkg/records"
)

// Coerce casts string values to their semantic types per the schema contract.
// Parsing is permissive: a value that cannot be cast becomes nil rather than
// aborting the run, leaving the completeness filter to drop the row.
type Coerce struct {
	// Fields maps field name to target kind. Fields absent from the map
	// pass through untouched.
	Fields map[string]schema.Kind
}

// CoerceForSchema builds a Coerce covering every base field of the dataset.
func CoerceForSchema() Coerce {
	kinds := make(map[string]schema.Kind, len(schema.Base))
	for _, f := range schema.Base {
		kinds[f.Name] = f.Kind
	}
	return Coerce{Fields: kinds}
}

// Apply implements transformer.Transformer.
func (c Coerce) Apply(in []records.Record) []records.Record {
	if len(c.Fields) == 0 {
		return in
	}
	for _, r := range in {
		for field, kind := range c.Fields {
			v, ok := r[field]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			switch kind {
			case schema.KindInt:
				if n, err := strconv.Atoi(s); err == nil {
					r[field] = n
				} else {
					r[field] = nil
				}
			case schema.KindYear:
				if y, ok := parseYear(s); ok {
					r[field] = y
				} else {
					r[field] = nil
				}
			case schema.KindFloat:
				if f, err := strconv.ParseFloat(s, 64); err == nil {
					r[field] = f
				} else {
					r[field] = nil
				}
			case schema.KindText:
				// already string
			}
		}
	}
	return in
}

// parseYear extracts a year-granularity value. Accepted forms: a bare year
// ("2006"), a date with a leading year ("2006-11-19"), or a float-formatted
// year ("2006.0"). Years outside 1900..2100 are rejected; upstream data uses
// "N/A" and similar markers which fail strconv and land here as not-ok.
func parseYear(s string) (int, bool) {
	if i := strings.IndexByte(s, '-'); i > 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1900 || y > 2100 {
		return 0, false
	}
	return y, true
}
