// Package parser defines the contract parser implementations satisfy. The
// config's parser.kind field selects a concrete implementation; each one
// turns raw source bytes into canonical records and reports how many rows it
// had to skip.
package parser

import (
	"io"

	"vgsales/pkg/records"
)

type Parser interface {
	Parse(r io.Reader) ([]records.Record, int, error)
}
