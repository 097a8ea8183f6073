package builtin

import (
	"testing"

	"vgsales/pkg/records"
)

func TestNormalizeTrimsAndNils(t *testing.T) {
	recs := []records.Record{{
		"name":      "  Wii Sports  ",
		"publisher": "   ",
		"rank":      7, // non-string passes through
	}}

	out := Normalize{}.Apply(recs)

	if v := out[0]["name"]; v != "Wii Sports" {
		t.Fatalf("name=%q want %q", v, "Wii Sports")
	}
	if v := out[0]["publisher"]; v != nil {
		t.Fatalf("publisher=%v want nil", v)
	}
	if v := out[0]["rank"]; v != 7 {
		t.Fatalf("rank=%v want 7", v)
	}
}
