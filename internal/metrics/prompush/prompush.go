// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// This package adapts the generic metrics.Backend interface to Prometheus by:
//
//   - Using client_golang CounterVec and SummaryVec collectors.
//   - Mapping the common workflow labels (job, step, status) onto Prometheus
//     labels.
//   - Pushing collected metrics to a Prometheus Pushgateway instance instead of
//     exposing an HTTP scrape endpoint. Runs are batch jobs; by the time a
//     scraper would come around, the process is gone.
//
// The package intentionally contains all Prometheus-specific dependencies so
// that the rest of the project remains decoupled from Prometheus and can swap
// to alternative backends (e.g. Datadog, StatsD) without changes to the core
// workflow.
package prompush

import (
	"fmt"

	"vgsales/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	// Step-level metrics
	stepCounter  *prometheus.CounterVec // "vgsales_step_total"
	stepDuration *prometheus.SummaryVec // "vgsales_step_duration_seconds"

	// Record-level metrics
	recordCounter *prometheus.CounterVec // "vgsales_records_total"

	// Report-level metrics
	queryCounter    *prometheus.CounterVec // "vgsales_report_queries_total"
	queryRowCounter *prometheus.CounterVec // "vgsales_report_rows_total"
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName: the Pushgateway "job" name (often same as pipeline job).
// gatewayURL: base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "vgsales"
	}

	reg := prometheus.NewRegistry()

	// We use step and status as dynamic labels;
	// job is the Pushgateway "job" grouping key.
	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgsales_step_total",
			Help: "Total number of workflow step executions, partitioned by step and status.",
		},
		[]string{"step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "vgsales_step_duration_seconds",
			Help:       "Duration of workflow steps in seconds, partitioned by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step", "status"},
	)

	// RECORD metrics: kind (parsed, parse_errors, dropped, stored, exported).
	recordCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgsales_records_total",
			Help: "Record-level counts per kind (parsed, parse_errors, dropped, stored, exported).",
		},
		[]string{"kind"},
	)

	// REPORT metrics: per-query execution and result-size counters.
	queryCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgsales_report_queries_total",
			Help: "Total number of report query executions, partitioned by query.",
		},
		[]string{"query"},
	)
	queryRowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgsales_report_rows_total",
			Help: "Total rows returned by report queries, partitioned by query.",
		},
		[]string{"query"},
	)

	if err := reg.Register(stepCounter); err != nil {
		return nil, fmt.Errorf("prompush: register step counter: %w", err)
	}
	if err := reg.Register(stepDuration); err != nil {
		return nil, fmt.Errorf("prompush: register step summary: %w", err)
	}
	if err := reg.Register(recordCounter); err != nil {
		return nil, fmt.Errorf("prompush: register record counter: %w", err)
	}
	if err := reg.Register(queryCounter); err != nil {
		return nil, fmt.Errorf("prompush: register query counter: %w", err)
	}
	if err := reg.Register(queryRowCounter); err != nil {
		return nil, fmt.Errorf("prompush: register query row counter: %w", err)
	}

	return &Backend{
		gatewayURL:      gatewayURL,
		jobName:         jobName,
		reg:             reg,
		stepCounter:     stepCounter,
		stepDuration:    stepDuration,
		recordCounter:   recordCounter,
		queryCounter:    queryCounter,
		queryRowCounter: queryRowCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "vgsales_step_total":
		if b.stepCounter == nil {
			return
		}
		step := labels["step"]
		status := labels["status"]
		b.stepCounter.WithLabelValues(step, status).Add(delta)

	case "vgsales_records_total":
		if b.recordCounter == nil {
			return
		}
		kind := labels["kind"]
		b.recordCounter.WithLabelValues(kind).Add(delta)

	case "vgsales_report_queries_total":
		if b.queryCounter == nil {
			return
		}
		b.queryCounter.WithLabelValues(labels["query"]).Add(delta)

	case "vgsales_report_rows_total":
		if b.queryRowCounter == nil {
			return
		}
		b.queryRowCounter.WithLabelValues(labels["query"]).Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "vgsales_step_duration_seconds" || b.stepDuration == nil {
		return
	}
	step := labels["step"]
	status := labels["status"]
	b.stepDuration.WithLabelValues(step, status).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
