// Package metrics provides Prometheus instrumentation for the pipeline.
//
// The CLI is short-lived, so there is no /metrics endpoint. When
// METRICS_FILE is set each command writes the registry in the text
// exposition format on exit, ready for node_exporter's textfile collector:
//
//	defer metrics.WriteTextfile(config.MetricsFile())
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shopdata"

var (
	// RowsGenerated counts synthetic rows written per table.
	RowsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generator",
			Name:      "rows_total",
			Help:      "Total synthetic rows generated.",
		},
		[]string{"table"},
	)

	// RowsIngested counts rows committed to the database per table.
	RowsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "rows_total",
			Help:      "Total rows loaded into the database.",
		},
		[]string{"table"},
	)

	// IngestFailures counts ingest runs that ended in an error, by stage.
	IngestFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "failures_total",
			Help:      "Total failed ingest runs.",
		},
		[]string{"stage"}, // "files" | "decode" | "schema" | "insert"
	)

	// ReportCustomers is the number of customers in the last report.
	ReportCustomers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "report",
		Name:      "customers",
		Help:      "Customers listed in the last report.",
	})

	// StageDuration tracks how long each pipeline stage takes.
	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1, 5},
		},
		[]string{"stage"}, // "generate" | "ingest" | "report"
	)
)

// DefaultRegistry holds every pipeline metric.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		RowsGenerated,
		RowsIngested,
		IngestFailures,
		ReportCustomers,
		StageDuration,
	)
}

// ObserveStage records a stage duration with a simple timer:
//
//	defer metrics.ObserveStage("ingest", time.Now())
func ObserveStage(stage string, start time.Time) {
	StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// WriteTextfile writes the registry to path. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, DefaultRegistry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
