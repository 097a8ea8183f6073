package exporter

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"vgsales/internal/schema"
	"vgsales/internal/storage"
	"vgsales/internal/storage/sqlite"
)

func seededRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	ctx := context.Background()
	repo, err := sqlite.NewRepository(ctx, sqlite.Config{DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(repo.Close)
	if err := storage.EnsureTables(ctx, "sqlite", repo, "games"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	cols := []string{"rank", "name", "platform", "year", "genre", "publisher",
		"na_sales", "eu_sales", "jp_sales", "other_sales", "global_sales",
		"game_total_sales", "publisher_total_sales", "platform_total_sales", "genre_total_sales"}
	rows := [][]any{
		// Inserted out of rank order on purpose; the export must sort.
		{2, "Tetris", "GB", 1989, "Puzzle", "Nintendo", 23.2, 2.26, 4.22, 0.58, 30.26, 30.26, 100.0, 31.0, 32.0},
		{1, "Wii Sports", "Wii", 2006, "Sports", "Nintendo", 41.49, 29.02, 3.77, 8.46, 82.74, 82.74, 100.0, 90.0, 80.0},
	}
	if _, err := repo.CopyFrom(ctx, "games", cols, rows); err != nil {
		t.Fatalf("copy: %v", err)
	}
	return repo
}

func TestWriteProducesCanonicalCSV(t *testing.T) {
	repo := seededRepo(t)
	path := filepath.Join(t.TempDir(), "out", "clean.csv")

	e := &Exporter{Repo: repo, Table: "games"}
	n, digest, err := e.Write(context.Background(), path)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != 2 {
		t.Fatalf("rows = %d, want 2", n)
	}
	if digest == 0 {
		t.Fatal("digest should be non-zero for non-empty export")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !reflect.DeepEqual(recs[0], schema.ExportHeaders()) {
		t.Fatalf("header = %v", recs[0])
	}
	if len(recs) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(recs))
	}
	if recs[1][1] != "Wii Sports" || recs[2][1] != "Tetris" {
		t.Fatalf("rows not ordered by rank: %v / %v", recs[1], recs[2])
	}
	if recs[1][0] != "1" {
		t.Fatalf("rank formatted as %q, want 1", recs[1][0])
	}
	if recs[1][6] != "41.49" {
		t.Fatalf("na_sales formatted as %q, want 41.49", recs[1][6])
	}
}

func TestWriteIsDeterministic(t *testing.T) {
	repo := seededRepo(t)
	dir := t.TempDir()
	e := &Exporter{Repo: repo, Table: "games"}

	_, d1, err := e.Write(context.Background(), filepath.Join(dir, "a.csv"))
	if err != nil {
		t.Fatalf("first write: %v", err)
	}
	_, d2, err := e.Write(context.Background(), filepath.Join(dir, "b.csv"))
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if d1 != d2 {
		t.Fatalf("digests differ: %x vs %x", d1, d2)
	}
}

func TestWriteOverwritesExisting(t *testing.T) {
	repo := seededRepo(t)
	path := filepath.Join(t.TempDir(), "clean.csv")
	if err := os.WriteFile(path, []byte("stale contents\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := &Exporter{Repo: repo, Table: "games"}
	if _, _, err := e.Write(context.Background(), path); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Fatal("existing file was not overwritten")
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"PS4", "PS4"},
		{int64(42), "42"},
		{3.5, "3.5"},
		{0.1, "0.1"},
		{82.74, "82.74"},
	}
	for _, c := range cases {
		if got := formatValue(c.in); got != c.want {
			t.Errorf("formatValue(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
