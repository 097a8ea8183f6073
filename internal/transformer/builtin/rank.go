package builtin

import (
	"sort"

	"vgsales/pkg/records"
)

// DenseRank sorts the batch by the By field and assigns a 1-based,
// contiguous sequence number to the Target field. The sort is stable, so
// ties keep their input order. Records without a usable By value sort last
// but still receive a rank, keeping Target a permutation of 1..N.
type DenseRank struct {
	By         string
	Target     string
	Descending bool
}

// Apply implements transformer.Transformer. The returned slice is the input
// reordered by the sort.
func (d DenseRank) Apply(in []records.Record) []records.Record {
	sort.SliceStable(in, func(i, j int) bool {
		a, aok := in[i].Float(d.By)
		b, bok := in[j].Float(d.By)
		if aok != bok {
			return aok // rows with a value sort before rows without
		}
		if d.Descending {
			return a > b
		}
		return a < b
	})
	for i, r := range in {
		r[d.Target] = i + 1
	}
	return in
}
