package storage

import (
	"context"
	"errors"
	"testing"
)

// fakeRepo is a minimal Repository implementation for tests.
type fakeRepo struct {
	closed bool
}

func (f *fakeRepo) CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	return int64(len(rows)), nil
}
func (f *fakeRepo) Exec(ctx context.Context, sql string) error            { return nil }
func (f *fakeRepo) Query(ctx context.Context, sql string) (*Result, error) { return &Result{}, nil }
func (f *fakeRepo) Close()                                                { f.closed = true }

func TestRegisterAndNew(t *testing.T) {
	t.Parallel()

	kind := "fake"
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		return &fakeRepo{}, nil
	})

	repo, err := New(context.Background(), Config{Kind: kind})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if repo == nil {
		t.Fatalf("New returned nil repo")
	}

	found := false
	for _, k := range ListKinds() {
		if k == kind {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("registered kind %q not present in ListKinds: %v", kind, ListKinds())
	}
}

func TestNewUnsupportedKind(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{Kind: "does-not-exist"})
	if err == nil {
		t.Fatalf("expected error for unsupported kind")
	}
	if got, want := err.Error(), "unsupported storage.kind=does-not-exist"; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}

func TestRegisterOverride(t *testing.T) {
	t.Parallel()

	kind := "override"
	calls := 0

	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		calls++
		return &fakeRepo{}, nil
	})
	Register(kind, func(ctx context.Context, cfg Config) (Repository, error) {
		calls += 10
		return &fakeRepo{}, nil
	})

	if _, err := New(context.Background(), Config{Kind: kind}); err != nil {
		t.Fatalf("New error: %v", err)
	}
	if calls != 10 {
		t.Fatalf("factory call count = %d, want 10", calls)
	}
}

func TestFactoryErrorsBubbleUp(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("boom")
	Register("failing", func(ctx context.Context, cfg Config) (Repository, error) {
		return nil, sentinel
	})

	_, err := New(context.Background(), Config{Kind: "failing"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err=%v want sentinel", err)
	}
}

func TestEnsureTablesUnknownKind(t *testing.T) {
	t.Parallel()

	err := EnsureTables(context.Background(), "no-such-kind", &fakeRepo{}, "t")
	if err == nil {
		t.Fatalf("expected error for unregistered DDL kind")
	}
}
