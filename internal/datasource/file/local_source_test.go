package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDump(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "vgsales.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	return p
}

func TestOpenReadsDump(t *testing.T) {
	const payload = "Rank,Name\n1,Wii Sports\n"
	p := writeDump(t, payload)

	rc, err := NewLocal(p).Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != payload {
		t.Fatalf("content=%q want %q", got, payload)
	}
}

func TestOpenMissingDump(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing.csv")

	rc, err := NewLocal(p).Open(context.Background())
	if err == nil {
		rc.Close()
		t.Fatalf("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v want os.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), p) {
		t.Fatalf("error %q does not name the path", err)
	}
}

func TestOpenDoneContextSkipsFilesystem(t *testing.T) {
	p := writeDump(t, "ignored")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLocal(p).Open(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want context.Canceled", err)
	}
}
