// Package builtin contains the reusable batch transformers the pipeline is
// assembled from: whitespace normalization, permissive type coercion,
// completeness filtering, derived-column recomputation, and dense ranking.
package builtin

import (
	"strings"

	"vgsales/pkg/records"
)

// Normalize cleans string values in place: non-breaking spaces become plain
// spaces and surrounding whitespace is trimmed. It runs before coercion so
// numeric parsing sees clean input.
type Normalize struct{}

// Apply implements transformer.Transformer.
func (Normalize) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for k, v := range r {
			if s, ok := v.(string); ok {
				s = strings.TrimSpace(strings.ReplaceAll(s, " ", " "))
				if s == "" {
					r[k] = nil
					continue
				}
				r[k] = s
			}
		}
	}
	return in
}
