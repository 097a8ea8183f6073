package builtin

import "vgsales/pkg/records"

// SumInto recomputes Target as the sum of the Source fields for every
// record, discarding whatever value Target previously held. The source
// file's own total is treated as untrustworthy input.
type SumInto struct {
	Target  string
	Sources []string
}

// Apply implements transformer.Transformer. Records missing any source value
// get a nil Target; under normal operation the completeness filter has
// already removed such rows.
func (s SumInto) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		total := 0.0
		ok := true
		for _, src := range s.Sources {
			v, found := r.Float(src)
			if !found {
				ok = false
				break
			}
			total += v
		}
		if ok {
			r[s.Target] = total
		} else {
			r[s.Target] = nil
		}
	}
	return in
}
