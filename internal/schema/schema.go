// Package schema defines the canonical shape of the video-game sales dataset:
// source CSV headers, canonical field names, semantic types, and the column
// orders used for ingestion and export. Everything else in the pipeline
// (coercion, DDL bootstrap, export layout, report SQL) derives from this one
// contract so the column set is declared exactly once.
package schema

// Kind is the semantic type of a field after coercion.
type Kind string

const (
	KindText  Kind = "text"
	KindInt   Kind = "int"
	KindYear  Kind = "year" // year-granularity date, held as an int
	KindFloat Kind = "float"
)

// Field describes one column of the dataset.
type Field struct {
	// Name is the canonical snake_case field name used throughout the
	// pipeline and in storage.
	Name string

	// Header is the column header as it appears in the source CSV and in
	// the exported file.
	Header string

	Kind Kind

	// Required fields must be non-null after coercion; rows violating this
	// are dropped wholesale by the correction stage.
	Required bool
}

// Base lists the eleven source columns in input order.
var Base = []Field{
	{Name: "rank", Header: "Rank", Kind: KindInt, Required: true},
	{Name: "name", Header: "Name", Kind: KindText, Required: true},
	{Name: "platform", Header: "Platform", Kind: KindText, Required: true},
	{Name: "year", Header: "Year", Kind: KindYear, Required: true},
	{Name: "genre", Header: "Genre", Kind: KindText, Required: true},
	{Name: "publisher", Header: "Publisher", Kind: KindText, Required: true},
	{Name: "na_sales", Header: "NA_Sales", Kind: KindFloat, Required: true},
	{Name: "eu_sales", Header: "EU_Sales", Kind: KindFloat, Required: true},
	{Name: "jp_sales", Header: "JP_Sales", Kind: KindFloat, Required: true},
	{Name: "other_sales", Header: "Other_Sales", Kind: KindFloat, Required: true},
	{Name: "global_sales", Header: "Global_Sales", Kind: KindFloat, Required: true},
}

// Rollups lists the four derived total columns in export order, paired with
// the grouping key each one is computed over.
var Rollups = []Field{
	{Name: "game_total_sales", Header: "Game_Total_Sales", Kind: KindFloat},
	{Name: "publisher_total_sales", Header: "Publisher_Total_Sales", Kind: KindFloat},
	{Name: "platform_total_sales", Header: "Platform_Total_Sales", Kind: KindFloat},
	{Name: "genre_total_sales", Header: "Genre_Total_Sales", Kind: KindFloat},
}

// RollupKeys maps each rollup column to the base field it groups on, in the
// order the joins are applied.
var RollupKeys = []struct {
	Key    string // grouping field
	Target string // derived total column
}{
	{Key: "name", Target: "game_total_sales"},
	{Key: "publisher", Target: "publisher_total_sales"},
	{Key: "platform", Target: "platform_total_sales"},
	{Key: "genre", Target: "genre_total_sales"},
}

// RegionalSales are the four geography columns whose sum defines global_sales.
var RegionalSales = []string{"na_sales", "eu_sales", "jp_sales", "other_sales"}

// HeaderMap maps source CSV headers to canonical field names, for the parser.
func HeaderMap() map[string]string {
	m := make(map[string]string, len(Base))
	for _, f := range Base {
		m[f.Header] = f.Name
	}
	return m
}

// BaseColumns returns the canonical base column names in input order.
func BaseColumns() []string {
	cols := make([]string, len(Base))
	for i, f := range Base {
		cols[i] = f.Name
	}
	return cols
}

// ExportFields returns all fifteen export columns in canonical order:
// the base columns followed by the four rollup totals.
func ExportFields() []Field {
	out := make([]Field, 0, len(Base)+len(Rollups))
	out = append(out, Base...)
	out = append(out, Rollups...)
	return out
}

// ExportColumns returns the canonical export column names in order.
func ExportColumns() []string {
	fields := ExportFields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}
	return cols
}

// ExportHeaders returns the export file header row in canonical order.
func ExportHeaders() []string {
	fields := ExportFields()
	hdrs := make([]string, len(fields))
	for i, f := range fields {
		hdrs[i] = f.Header
	}
	return hdrs
}

// FieldByName looks up a field (base or rollup) by canonical name.
func FieldByName(name string) (Field, bool) {
	for _, f := range ExportFields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RawTable derives the staging table name for unconverted text rows from the
// final table name.
func RawTable(table string) string { return table + "_raw" }
