// Package file reads the sales dump from the local filesystem.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local opens a sales dump at a fixed filesystem path.
type Local struct{ path string }

// NewLocal binds a Local source to path. The file is not touched until Open.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open returns a reader over the dump file. A context that is already done
// short-circuits before the filesystem is touched. Open errors wrap the path
// and keep the underlying error visible to errors.Is (os.ErrNotExist etc).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
