package builtin

import (
	"testing"

	"vgsales/pkg/records"
)

func TestRequireDropsIncompleteRows(t *testing.T) {
	recs := []records.Record{
		{"name": "Alpha", "year": 2001},
		{"name": "Beta", "year": nil},
		{"name": "", "year": 1999},
		{"name": "Gamma", "year": 2010},
	}

	out := Require{Fields: []string{"name", "year"}}.Apply(recs)

	if len(out) != 2 {
		t.Fatalf("len=%d want 2", len(out))
	}
	if out[0]["name"] != "Alpha" || out[1]["name"] != "Gamma" {
		t.Fatalf("order not preserved: %v, %v", out[0]["name"], out[1]["name"])
	}
}

func TestRequireMissingFieldCountsAsNull(t *testing.T) {
	recs := []records.Record{{"name": "Alpha"}}
	out := Require{Fields: []string{"name", "publisher"}}.Apply(recs)
	if len(out) != 0 {
		t.Fatalf("len=%d want 0", len(out))
	}
}
