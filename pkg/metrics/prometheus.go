// Package metrics provides Prometheus metrics for the availability report
// generator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for generated reports.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Manager manages all Prometheus metrics for the generator.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Generation metrics
	reportsGenerated   *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	rowsLoaded         prometheus.Counter
	rowsDropped        prometheus.Counter
	rowsSkipped        prometheus.Counter
	lastRecordCount    prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorsByType *prometheus.CounterVec

	// Watch mode
	watchRegenerations prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "availreport",
		subsystem:        "generator",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.reportsGenerated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reports_total",
		Help:        "Total number of report generations by variant and outcome",
		ConstLabels: constLabels,
	}, []string{"variant", "outcome"})

	m.generationDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "generation_duration_milliseconds",
		Help:        "Time from load to rendered document in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	}, []string{"variant"})

	m.rowsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_loaded_total",
		Help:        "Data rows read from input sheets",
		ConstLabels: constLabels,
	})

	m.rowsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_dropped_total",
		Help:        "Rows removed for zero or unparseable availability",
		ConstLabels: constLabels,
	})

	m.rowsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_skipped_total",
		Help:        "Rows skipped for per-row faults such as a blank role or region",
		ConstLabels: constLabels,
	})

	m.lastRecordCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_report_records",
		Help:        "Associates included in the most recent report",
		ConstLabels: constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_total",
		Help:        "Errors by component and type",
		ConstLabels: constLabels,
	}, []string{"component", "error_type"})

	m.watchRegenerations = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "watch_regenerations_total",
		Help:        "Reports regenerated by watch mode",
		ConstLabels: constLabels,
	})
}

// RecordReport counts one generation and its latency.
func (m *Manager) RecordReport(variant, outcome string, durationMs float64) {
	m.reportsGenerated.WithLabelValues(variant, outcome).Inc()
	m.generationDuration.WithLabelValues(variant).Observe(durationMs)
}

// RecordRows adds normalization counters and sets the last record gauge.
func (m *Manager) RecordRows(loaded, dropped, skipped, records int) {
	m.rowsLoaded.Add(float64(loaded))
	m.rowsDropped.Add(float64(dropped))
	m.rowsSkipped.Add(float64(skipped))
	m.lastRecordCount.Set(float64(records))
}

// RecordReport counts one generation on the global manager.
func RecordReport(variant, outcome string, durationMs float64) {
	globalManager.RecordReport(variant, outcome, durationMs)
}

// RecordRows records normalization counters on the global manager.
func RecordRows(loaded, dropped, skipped, records int) {
	globalManager.RecordRows(loaded, dropped, skipped, records)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordError counts an error by component and type.
func RecordError(component, errorType string) {
	globalManager.errorsByType.WithLabelValues(component, errorType).Inc()
}

// RecordWatchRegeneration counts a report rebuilt by watch mode.
func RecordWatchRegeneration() {
	globalManager.watchRegenerations.Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
