// Package csv parses delimited input with a header row into records. Parsing
// is permissive: rows that fail to parse or have the wrong width are skipped
// and counted rather than aborting the run, and empty cells become nil so the
// later completeness check can drop incomplete rows wholesale.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"vgsales/pkg/records"
)

// Options configures the parser. All fields are optional; zero values fall
// back to sensible defaults.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// ExpectedFields, when > 0, enforces a fixed field count per record.
	// Rows with a different width are skipped (soft-fail) and counted.
	ExpectedFields int

	// HeaderMap maps source header names to canonical keys (e.g.
	// "NA_Sales" -> "na_sales"). Only applies when HasHeader is true.
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// skipLogLimit caps the number of per-row skip messages emitted per parse.
const skipLogLimit = 400

// Parse consumes CSV records from r and returns the parsed rows along with
// the number of rows skipped due to parse errors or field-count mismatches.
func (p *Parser) Parse(r io.Reader) ([]records.Record, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}

	var headers []string
	var out []records.Record
	var skipped int

	if p.opt.HasHeader {
		h, err := cr.Read()
		if err != nil {
			return nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		headers = normalizeHeaders(h, p.opt)
	} else if p.opt.ExpectedFields > 0 {
		headers = make([]string, p.opt.ExpectedFields)
		for i := range headers {
			headers[i] = fmt.Sprintf("col_%d", i)
		}
	}

	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < skipLogLimit {
				log.Printf("csv: skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}

		if len(headers) > 0 && len(row) != len(headers) {
			if skipped < skipLogLimit {
				log.Printf("csv: skipping row %d: expected %d fields, got %d", line, len(headers), len(row))
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[keyFor(i, headers)] = emptyToNil(val)
		}
		out = append(out, rec)
	}

	return out, skipped, nil
}

// keyFor returns the column key for index idx, using headers when available,
// otherwise synthesizing a "col_N" name.
func keyFor(idx int, headers []string) string {
	if idx < len(headers) && headers[idx] != "" {
		return headers[idx]
	}
	return fmt.Sprintf("col_%d", idx)
}

// emptyToNil converts an empty string to nil; other values pass through.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// normalizeHeaders produces canonical header keys using HeaderMap (when
// provided), falling back to accent-folded snake_case slugging. It also
// strips a UTF-8 BOM from the first cell if present.
func normalizeHeaders(h []string, opt Options) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if opt.HeaderMap != nil {
			if m, ok := opt.HeaderMap[c]; ok {
				res[i] = m
				continue
			}
		}
		res[i] = canonicalHeader(c)
	}
	return res
}
