package datadog

import (
	"testing"

	"vgsales/internal/metrics"
)

func TestNewBackendRequiresAddr(t *testing.T) {
	if _, err := NewBackend(Config{}); err == nil {
		t.Fatalf("expected error for empty Addr")
	}
}

func TestNewBackendAppliesOptions(t *testing.T) {
	// UDP construction does not need a listening agent.
	b, err := NewBackend(Config{
		Addr:       "127.0.0.1:8125",
		Namespace:  "vgsales.",
		GlobalTags: []string{"env:test"},
	})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	defer b.Flush()

	// Emitting must not panic; delivery is fire-and-forget over UDP.
	b.IncCounter("unit_total", 1, metrics.Labels{"job": "t"})
	b.ObserveHistogram("unit_seconds", 0.1, nil)
}

func TestLabelsToTags(t *testing.T) {
	tags := labelsToTags(metrics.Labels{"job": "vgsales"})
	if len(tags) != 1 || tags[0] != "job:vgsales" {
		t.Fatalf("tags=%v want [job:vgsales]", tags)
	}
	if got := labelsToTags(nil); got != nil {
		t.Fatalf("tags=%v want nil", got)
	}
}
