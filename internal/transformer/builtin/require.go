package builtin

import "vgsales/pkg/records"

// Require removes any record missing a value for any of the specified
// fields. It is the completeness gate the later correction and rollup stages
// depend on: after Require, every surviving row has a usable value in every
// listed field.
type Require struct {
	Fields []string
}

// Apply returns a filtered slice containing only records that have all
// required fields present and non-empty. The input's relative order is
// preserved.
func (r Require) Apply(in []records.Record) []records.Record {
	out := in[:0]
	for _, rec := range in {
		ok := true
		for _, f := range r.Fields {
			if rec.IsNull(f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}
