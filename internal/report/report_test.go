package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vgsales/internal/chart"
	"vgsales/internal/storage"
	"vgsales/internal/storage/sqlite"
)

var finalColumns = []string{"rank", "name", "platform", "year", "genre", "publisher",
	"na_sales", "eu_sales", "jp_sales", "other_sales", "global_sales",
	"game_total_sales", "publisher_total_sales", "platform_total_sales", "genre_total_sales"}

func seedRepo(t *testing.T, rows [][]any) *sqlite.Repository {
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
	if _, err := repo.CopyFrom(ctx, "games", finalColumns, rows); err != nil {
		t.Fatalf("copy: %v", err)
	}
	return repo
}

func sampleRows() [][]any {
	return [][]any{
		{1, "Wii Sports", "Wii", 2006, "Sports", "Nintendo", 41.49, 29.02, 3.77, 8.46, 82.74, 82.74, 200.0, 90.0, 80.0},
		{2, "Mario Kart 8", "PS4", 2014, "Racing", "Nintendo", 10.0, 9.0, 3.0, 2.0, 24.0, 24.0, 200.0, 50.0, 60.0},
		{3, "Just Cause 2", "PS3", 2010, "Action", "Square Enix", 1.0, 1.2, 0.1, 0.3, 2.6, 5.2, 20.0, 40.0, 70.0},
		{4, "Just Cause 2", "X360", 2010, "Action", "Square Enix", 1.1, 1.0, 0.1, 0.4, 2.6, 5.2, 20.0, 30.0, 70.0},
		{5, "Skylanders", "3DS", 2012, "Action", "Activision", 0.9, 0.8, 0.0, 0.2, 1.9, 1.9, 10.0, 15.0, 70.0},
	}
}

func TestRunnerExecutesCatalogAndWritesCharts(t *testing.T) {
	repo := seedRepo(t, sampleRows())
	dir := t.TempDir()
	r := &Runner{Repo: repo, Table: "games", OutputDir: dir, Charts: true}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, q := range Catalog() {
		path := filepath.Join(dir, q.Name+".html")
		_, err := os.Stat(path)
		if q.Chart == "" {
			if err == nil {
				t.Fatalf("%s: chart file written for console-only query", q.Name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: missing chart file: %v", q.Name, err)
		}
	}
}

func TestRunnerSkipsChartsWhenDisabled(t *testing.T) {
	repo := seedRepo(t, sampleRows())
	dir := t.TempDir()
	r := &Runner{Repo: repo, Table: "games", OutputDir: dir, Charts: false}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no chart files, found %d", len(entries))
	}
}

func TestReleaseYearValidationFails(t *testing.T) {
	rows := sampleRows()
	rows[3][3] = 2011 // same game, conflicting year
	repo := seedRepo(t, rows)
	r := &Runner{Repo: repo, Table: "games"}
	if err := r.Run(context.Background()); err == nil {
		t.Fatal("expected validation error for conflicting release years")
	}
}

func TestReleaseYearValidationSkipsAbsentGame(t *testing.T) {
	rows := sampleRows()[:2] // no Just Cause 2 rows at all
	repo := seedRepo(t, rows)
	r := &Runner{Repo: repo, Table: "games"}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run with absent game: %v", err)
	}
}

func TestTopRankedOrdersByRank(t *testing.T) {
	repo := seedRepo(t, sampleRows())
	var q Query
	for _, c := range Catalog() {
		if c.Name == "top_ranked" {
			q = c
		}
	}
	res, err := repo.Query(context.Background(), q.Statement("games"))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	ranks, err := columnFloats(res, "rank")
	if err != nil {
		t.Fatalf("ranks: %v", err)
	}
	for i := 1; i < len(ranks); i++ {
		if ranks[i] < ranks[i-1] {
			t.Fatalf("ranks not ascending: %v", ranks)
		}
	}
}

func TestItemColorsUseColorSourceQuery(t *testing.T) {
	// The since-2010 chart takes its platform keys from the all-time
	// top-ranked result, matched by row position.
	allTime := &storage.Result{
		Columns: []string{"name", "platform"},
		Rows: [][]any{
			{"A", "PS3"},
			{"B", "Wii"},
			{"C", "X360"},
		},
	}
	recent := &storage.Result{
		Columns: []string{"name", "platform"},
		Rows: [][]any{
			{"D", "PS4"},
			{"E", "PS4"},
			{"F", "PS4"},
		},
	}
	q := Query{
		ColorBy:         "platform",
		Colors:          chart.PlatformColorsSince2010,
		ColorsFromQuery: "top_ranked",
	}
	colors, err := itemColors(q, recent, map[string]*storage.Result{"top_ranked": allTime})
	if err != nil {
		t.Fatalf("itemColors: %v", err)
	}
	want := []string{"blue", "", "green"} // PS3, Wii (unmapped), X360
	if len(colors) != len(want) {
		t.Fatalf("got %d colors, want %d", len(colors), len(want))
	}
	for i := range want {
		if colors[i] != want[i] {
			t.Fatalf("color %d = %q, want %q", i, colors[i], want[i])
		}
	}
}
