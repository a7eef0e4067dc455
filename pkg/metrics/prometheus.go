// Package metrics provides Prometheus metrics for the flightdesk service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the flightdesk service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Snapshot metrics
	snapshotLoads    prometheus.Counter
	snapshotLastUnix prometheus.Gauge
	snapshotRecords  *prometheus.GaugeVec
	parseWarnings    *prometheus.CounterVec
	storedRevisions  prometheus.Gauge

	// Engine metrics
	conflictsDetected *prometheus.CounterVec
	checkSkips        *prometheus.CounterVec
	detectionLatency  prometheus.Histogram
	rankingLatency    prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "flightdesk",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.snapshotLoads = auto.NewCounter(m.counterOpts(
		"snapshot_loads_total", "Total number of snapshots loaded"))

	m.snapshotLastUnix = auto.NewGauge(m.gaugeOpts(
		"snapshot_last_unix", "Unix timestamp of the last snapshot load"))

	m.snapshotRecords = auto.NewGaugeVec(m.gaugeOpts(
		"snapshot_records", "Records in the current snapshot by entity"),
		[]string{"entity"})

	m.parseWarnings = auto.NewCounterVec(m.counterOpts(
		"parse_warnings_total", "Total number of normalization warnings by entity"),
		[]string{"entity"})

	m.storedRevisions = auto.NewGauge(m.gaugeOpts(
		"stored_revisions", "Snapshot revisions retained by the store"))

	m.conflictsDetected = auto.NewCounterVec(m.counterOpts(
		"conflicts_detected_total", "Total number of conflicts reported by kind"),
		[]string{"kind"})

	m.checkSkips = auto.NewCounterVec(m.counterOpts(
		"check_skips_total", "Total number of records a check could not evaluate, by kind"),
		[]string{"kind"})

	m.detectionLatency = auto.NewHistogram(m.histogramOpts(
		"detection_latency_milliseconds", "Conflict detection latency in milliseconds", m.histogramBuckets))

	m.rankingLatency = auto.NewHistogram(m.histogramOpts(
		"ranking_latency_milliseconds", "Candidate ranking latency in milliseconds", m.histogramBuckets))

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(m.counterOpts(
		"errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"})

	m.errorRateByType = auto.NewCounterVec(m.counterOpts(
		"errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts(
		"errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(m.histogramOpts(
		"error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "System memory usage in bytes"))

	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Number of goroutines"))

	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// Snapshot Metrics Functions.

// RecordSnapshotLoad counts a snapshot load and stamps its time.
func RecordSnapshotLoad(unix int64) {
	globalManager.snapshotLoads.Inc()
	globalManager.snapshotLastUnix.Set(float64(unix))
}

// UpdateSnapshotRecords sets the record counts of the current snapshot.
func UpdateSnapshotRecords(pilots, drones, missions int) {
	globalManager.snapshotRecords.WithLabelValues("pilot").Set(float64(pilots))
	globalManager.snapshotRecords.WithLabelValues("drone").Set(float64(drones))
	globalManager.snapshotRecords.WithLabelValues("mission").Set(float64(missions))
}

// RecordParseWarning increments the warning counter for an entity.
func RecordParseWarning(entity string) {
	globalManager.parseWarnings.WithLabelValues(entity).Inc()
}

// UpdateStoredRevisions sets the number of retained revisions.
func UpdateStoredRevisions(count int) {
	globalManager.storedRevisions.Set(float64(count))
}

// Engine Metrics Functions.

// RecordConflict increments the conflict counter for a kind.
func RecordConflict(kind string) {
	globalManager.conflictsDetected.WithLabelValues(kind).Inc()
}

// RecordCheckSkip increments the skip counter for a kind.
func RecordCheckSkip(kind string) {
	globalManager.checkSkips.WithLabelValues(kind).Inc()
}

// RecordDetectionLatency records conflict detection latency in milliseconds.
func RecordDetectionLatency(latencyMs float64) {
	globalManager.detectionLatency.Observe(latencyMs)
}

// RecordRankingLatency records ranking latency in milliseconds.
func RecordRankingLatency(latencyMs float64) {
	globalManager.rankingLatency.Observe(latencyMs)
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
