// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "report.output_dir"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue in the slice is of error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline performs static validation / linting of a Pipeline.
//
// It does not mutate the pipeline. Instead it returns a slice of Issue values.
// Callers may decide whether to treat warnings as fatal or not.
//
// Example:
//
//	p, err := config.Load(path)
//	if err != nil { ... }
//	issues := config.ValidatePipeline(p)
//	for _, iss := range issues {
//	    fmt.Printf("%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
//	}
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	// Top-level pipeline checks.
	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateExport(p.Export)...)
	issues = append(issues, validateReport(p.Report)...)

	return issues
}

// validateSource validates Source configuration.
func validateSource(s Source) []Issue {
	var issues []Issue

	// Kind is required.
	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  "source.kind must not be empty",
		})
		return issues
	}

	// Known source kinds. Unknown kinds are warnings (for forward compatibility).
	known := map[string]struct{}{
		"file": {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q; ensure a matching implementation exists", s.Kind),
		})
	}

	// Kind-specific checks.
	switch s.Kind {
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.file.path",
				Message:  "file source requires a non-empty path",
			})
		}
	}

	return issues
}

// validateParser validates parser configuration.
func validateParser(p Parser) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  "parser.kind must not be empty",
		})
		return issues
	}

	known := map[string]struct{}{
		"csv": {},
	}
	if _, ok := known[p.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "parser.kind",
			Message:  fmt.Sprintf("unknown parser kind %q; ensure a matching implementation exists", p.Kind),
		})
	}

	// Parser-specific sanity checks (kept intentionally light).
	switch p.Kind {
	case "csv":
		if comma := p.Options.String("comma", ","); len([]rune(comma)) > 1 {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "parser.options.comma",
				Message:  fmt.Sprintf("comma %q is longer than one rune; only the first is used", comma),
			})
		}
	}

	return issues
}

// validateStorage validates storage configuration and DB settings.
func validateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
		return issues
	}

	known := map[string]struct{}{
		"postgres": {},
		"mysql":    {},
		"sqlite":   {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}

	// DB-specific checks (shared across backends).
	db := s.DB
	if strings.TrimSpace(db.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  "storage.db.dsn must not be empty",
		})
	}
	if strings.TrimSpace(db.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.table",
			Message:  "storage.db.table must not be empty",
		})
	}

	return issues
}

// validateExport validates the cleaned-dataset export settings.
func validateExport(e Export) []Issue {
	var issues []Issue

	if strings.TrimSpace(e.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "export.path",
			Message:  "export.path must not be empty",
		})
	}

	return issues
}

// validateReport validates the report settings.
func validateReport(r Report) []Issue {
	var issues []Issue

	if !r.Enabled {
		if r.Charts {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "report.charts",
				Message:  "charts are enabled but the report is not; no charts will be written",
			})
		}
		return issues
	}
	if r.Charts && strings.TrimSpace(r.OutputDir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "report.output_dir",
			Message:  "report.output_dir must not be empty when charts are enabled",
		})
	}

	return issues
}
