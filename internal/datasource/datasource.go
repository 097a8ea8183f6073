// Package datasource abstracts where the sales dump comes from. The pipeline
// only needs a readable stream; the concrete source decides how to produce it.
package datasource

import (
	"context"
	"io"
)

// Source yields the raw bytes of a sales dump. Each Open call returns a
// fresh reader; the caller closes it.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
