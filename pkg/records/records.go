// Package records defines the generic row representation passed between
// pipeline stages. A Record is a loosely typed map from canonical field name
// to value; parsers produce string values, the coerce transform narrows them
// to their semantic types, and later stages read them through the typed
// accessors below.
package records

// Record is a single logical row keyed by canonical field name. A nil value
// means the field is present but has no value (e.g., a failed cast).
type Record map[string]any

// Clone returns a shallow copy of the record. Values are shared; this is
// sufficient because the pipeline only ever replaces values, never mutates
// them in place.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the string value for field, or "" when the field is absent,
// nil, or not a string.
func (r Record) String(field string) string {
	if s, ok := r[field].(string); ok {
		return s
	}
	return ""
}

// Int returns the int value for field and whether a usable integer was found.
// int64 values (as produced by database scans) are accepted and narrowed.
func (r Record) Int(field string) (int, bool) {
	switch v := r[field].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// Float returns the float64 value for field and whether a usable number was
// found. Integer values are widened.
func (r Record) Float(field string) (float64, bool) {
	switch v := r[field].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// IsNull reports whether the field is absent, nil, or an empty string.
func (r Record) IsNull(field string) bool {
	v, ok := r[field]
	if !ok || v == nil {
		return true
	}
	s, isStr := v.(string)
	return isStr && s == ""
}
