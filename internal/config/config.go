// Package config defines the canonical, JSON-serializable configuration model
// for the sales workflow. It is intentionally small, explicit, and dependency-
// free so that pipelines can be loaded from disk (or other sources) and passed
// through the program without additional glue code.
//
// Design goals:
//
//  1. Stability: Changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: Field names in Go mirror the JSON structure used in pipeline
//     files under configs/pipelines/*.json.
//  3. Minimalism: No third-party config libraries; decoding is performed by the
//     standard library, with a light Options helper for typed access.
//
// Example (trimmed):
//
//	{
//	  "job":     "vgsales",
//	  "source":  { "kind": "file", "file": { "path": "data/vgsales.csv" } },
//	  "parser":  { "kind": "csv", "options": { "has_header": true } },
//	  "storage": { "kind": "sqlite", "db": { "dsn": "vgsales.db", "table": "games" } },
//	  "export":  { "path": "out/vgsales_clean.csv" },
//	  "report":  { "enabled": true, "charts": true, "output_dir": "out/charts" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Pipeline describes one full run of the workflow: ingest, correct, persist,
// export, report. It is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job names the run; it labels metrics and log lines.
	Job string `json:"job"`

	// Source describes where input data comes from (e.g., local file).
	Source Source `json:"source"`

	// Parser configures how raw bytes are turned into records (e.g., CSV).
	Parser Parser `json:"parser"`

	// Storage describes the database the raw and corrected tables live in.
	Storage Storage `json:"storage"`

	// Export configures the cleaned-dataset CSV written after correction.
	Export Export `json:"export"`

	// Report configures the post-run query battery and its charts.
	Report Report `json:"report"`
}

// Source identifies the data source. Additional kinds can be added over time.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input file.
	Path string `json:"path"`
}

// Parser selects how to parse the raw source into logical rows/columns.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV, typical keys include:
	//   has_header (bool), comma (string), trim_space (bool),
	//   expected_fields (int), header_map (object)
	Options Options `json:"options"`
}

// Storage selects the database backend used to persist the tables.
type Storage struct {
	// Kind selects the storage implementation: "sqlite", "postgres", "mysql".
	Kind string `json:"kind"`

	// DB configures the selected backend.
	DB DBConfig `json:"db"`
}

// DBConfig configures the DB sink shared across backends.
type DBConfig struct {
	// DSN is the backend connection string (a file path or ":memory:" for
	// sqlite, a URL for postgres, a go-sql-driver DSN for mysql).
	DSN string `json:"dsn"`

	// Table is the final table name. The raw staging table derives from it
	// (Table + "_raw").
	Table string `json:"table"`
}

// Export configures the cleaned-dataset CSV.
type Export struct {
	// Path is the destination file. An existing file is overwritten.
	Path string `json:"path"`
}

// Report configures the descriptive query battery run after persistence.
type Report struct {
	// Enabled turns the whole battery on or off.
	Enabled bool `json:"enabled"`

	// Charts turns HTML chart rendering on or off.
	Charts bool `json:"charts"`

	// OutputDir receives one HTML file per charted query.
	OutputDir string `json:"output_dir"`
}

// Load reads and decodes a pipeline file. Unknown fields are rejected so that
// typos in pipeline files surface immediately.
func Load(path string) (Pipeline, error) {
	var p Pipeline
	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return p, nil
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without introducing third-party configuration libraries. It purposefully
// performs only minimal type coercion and returns provided defaults when a key
// is absent or of an unexpected type.
//
// Options is used for parser-specific configuration where the shape varies by
// implementation.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers are decoded as
// float64 by encoding/json, so this method accepts float64 and casts to int.
// If the value is neither float64 nor int, def is returned.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. This is useful for single-character parser settings such as
// a CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored. Returns an empty map
// when the key is missing or the value is not an object.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null "options"
// object in JSON decodes to a non-nil, empty Options map. This simplifies call
// sites by removing the need to nil-check Options values.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
