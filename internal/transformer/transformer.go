// Package transformer defines the transformation stage contract. Each stage
// of the cleanup pipeline is a pure batch transform: it takes the prior
// table (a slice of records) and returns the next one. Composing stages into
// a Chain makes the order of execution explicit instead of relying on
// successive reassignment of a shared working table.
package transformer

import "vgsales/pkg/records"

// Transformer consumes a batch of records and returns the transformed batch.
// Implementations may mutate records in place and may change the row count.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers applied left to right.
type Chain []Transformer

// Apply runs each transformer in sequence, feeding the output of one into
// the next.
func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
