// Package report holds the fixed battery of descriptive slices run against
// the final table after a pipeline run, plus the runner that executes them
// and hands charted results to the renderer. Each entry is a pure read:
// filter, optional group/aggregate, sort, truncate. The literal parameters
// below are the published contract of the report; changing them changes the
// report's meaning.
package report

import (
	"fmt"

	"vgsales/internal/chart"
	"vgsales/internal/storage"
)

// Query describes one slice of the report.
type Query struct {
	// Name identifies the query; chart files are written as <Name>.html.
	Name string

	// Title is the chart title, kept verbatim from the published report.
	Title string

	// SQL is the statement template; %s is replaced by the final table name.
	SQL string

	// Chart selects the rendering, or empty for a console-only slice.
	Chart chart.Kind

	// X and Y name the category/x-axis column and the value column.
	X, Y string

	// ColorBy names the column whose values select fixed item colors
	// through Colors. Only used by bar charts.
	ColorBy string
	Colors  map[string]string

	// ColorsFromQuery, when set, takes the ColorBy values from that
	// query's result (positionally) instead of this query's own rows.
	// The "since 2010" chart ships with this quirk: its colors are looked
	// up against the all-time top-ten's platforms. Kept as-is for output
	// compatibility; see DESIGN.md.
	ColorsFromQuery string

	// Validate optionally checks the result and fails the report on
	// violation.
	Validate func(*storage.Result) error
}

// Statement renders the SQL template for the given table.
func (q Query) Statement(table string) string {
	return fmt.Sprintf(q.SQL, table)
}

// Catalog returns the report queries in execution order. Order matters:
// chart color sources (ColorsFromQuery) always refer to earlier entries.
func Catalog() []Query {
	return []Query{
		{
			Name:    "top_ranked",
			Title:   "Top 10 Ranked Games",
			SQL:     `SELECT "rank", name, platform, global_sales, year FROM %s ORDER BY "rank" LIMIT 10`,
			Chart:   chart.KindBar,
			X:       "name",
			Y:       "rank",
			ColorBy: "platform",
			Colors:  chart.PlatformColors,
		},
		{
			Name: "top_ranked_action",
			SQL:  `SELECT "rank", name, platform, global_sales, year FROM %s WHERE genre LIKE '%%Action%%' ORDER BY "rank" LIMIT 10`,
		},
		{
			Name:  "top_games",
			Title: "Top 10 Games by Total Sales (in Millions)",
			SQL:   "SELECT DISTINCT name, game_total_sales FROM %s ORDER BY game_total_sales DESC LIMIT 10",
			Chart: chart.KindBar,
			X:     "name",
			Y:     "game_total_sales",
		},
		{
			Name:  "genre_totals",
			Title: "Top 10 Genres by Total Sales (in Millions)",
			SQL:   "SELECT DISTINCT genre, genre_total_sales FROM %s ORDER BY genre_total_sales DESC",
			Chart: chart.KindBar,
			X:     "genre",
			Y:     "genre_total_sales",
		},
		{
			Name:  "top_platforms",
			Title: "Top 10 Platforms by Total Sales (in Millions)",
			SQL:   "SELECT DISTINCT platform, platform_total_sales FROM %s ORDER BY platform_total_sales DESC LIMIT 10",
			Chart: chart.KindPie,
			X:     "platform",
			Y:     "platform_total_sales",
		},
		{
			Name:  "top_publishers",
			Title: "Top 10 Publishers by Total Sales (in Millions)",
			SQL:   "SELECT DISTINCT publisher, publisher_total_sales FROM %s ORDER BY publisher_total_sales DESC LIMIT 10",
			Chart: chart.KindPie,
			X:     "publisher",
			Y:     "publisher_total_sales",
		},
		{
			Name:            "top_ranked_since_2010",
			Title:           "Top 10 Ranked Games",
			SQL:             `SELECT "rank", name, platform, global_sales, year FROM %s WHERE year >= 2010 ORDER BY "rank" LIMIT 10`,
			Chart:           chart.KindBar,
			X:               "name",
			Y:               "rank",
			ColorBy:         "platform",
			Colors:          chart.PlatformColorsSince2010,
			ColorsFromQuery: "top_ranked",
		},
		{
			Name:  "top_ps4",
			Title: "Top 10 PS4 Games by Total Sales (in Millions)",
			SQL:   "SELECT name, platform, global_sales FROM %s WHERE platform = 'PS4' ORDER BY global_sales DESC LIMIT 10",
			Chart: chart.KindPie,
			X:     "name",
			Y:     "global_sales",
		},
		{
			Name:  "top_games_2001",
			Title: "Top 10 Games in 2001 by Total Sales (in Millions)",
			SQL:   "SELECT DISTINCT name, year, game_total_sales FROM %s WHERE year = 2001 ORDER BY game_total_sales DESC LIMIT 10",
			Chart: chart.KindPie,
			X:     "name",
			Y:     "game_total_sales",
		},
		{
			Name:  "top_action_2010",
			Title: "Top 10 Action Games in 2010 by Total Sales (in Millions)",
			SQL:   "SELECT name, SUM(global_sales) AS total_sales FROM %s WHERE year = 2010 AND genre = 'Action' GROUP BY name ORDER BY total_sales DESC LIMIT 10",
			Chart: chart.KindBar,
			X:     "name",
			Y:     "total_sales",
		},
		{
			Name:  "top_eu_2012",
			Title: "Top 10 Games in the EU in 2012 by Total Sales (in Millions)",
			SQL:   "SELECT name, SUM(eu_sales) AS total_eu_sales FROM %s WHERE year = 2012 GROUP BY name ORDER BY total_eu_sales DESC LIMIT 10",
			Chart: chart.KindBar,
			X:     "name",
			Y:     "total_eu_sales",
		},
		{
			Name:  "activision_by_year",
			Title: "Activision Performance",
			SQL:   "SELECT year, publisher, SUM(global_sales) AS total_sales FROM %s WHERE publisher = 'Activision' GROUP BY year, publisher ORDER BY year DESC",
			Chart: chart.KindLine,
			X:     "year",
			Y:     "total_sales",
		},
		{
			Name:  "releases_per_year",
			Title: "Games Released per Year",
			SQL:   "SELECT year, COUNT(DISTINCT name) AS games_released FROM %s GROUP BY year ORDER BY year DESC",
			Chart: chart.KindLine,
			X:     "year",
			Y:     "games_released",
		},
		{
			Name:     "just_cause_2",
			SQL:      "SELECT name, year FROM %s WHERE name = 'Just Cause 2'",
			Validate: oneDistinctYear,
		},
	}
}

// oneDistinctYear checks multi-platform release-year consistency: every row
// of the looked-up game must share a single release year. An empty result
// means the game is absent from this dataset; there is nothing to check and
// the rest of the catalog should still run.
func oneDistinctYear(res *storage.Result) error {
	if len(res.Rows) == 0 {
		return nil
	}
	yearIdx := -1
	for i, c := range res.Columns {
		if c == "year" {
			yearIdx = i
		}
	}
	if yearIdx < 0 {
		return fmt.Errorf("result has no year column")
	}
	years := map[any]struct{}{}
	for _, row := range res.Rows {
		years[row[yearIdx]] = struct{}{}
	}
	if len(years) != 1 {
		return fmt.Errorf("expected exactly one distinct year, got %d", len(years))
	}
	return nil
}
