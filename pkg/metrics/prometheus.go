// Package metrics provides Prometheus metrics for the festgrid service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector used by festgrid.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Layout engine
	layoutRuns         prometheus.Counter
	layoutDuration     prometheus.Histogram
	positionedEvents   prometheus.Gauge
	droppedEvents      *prometheus.CounterVec
	overlapGroups      prometheus.Gauge
	maxLanes           prometheus.Gauge
	snapshotCacheHits  prometheus.Counter
	storedEvents       prometheus.Gauge
	seedReloads        *prometheus.CounterVec
	hintDismissals     prometheus.Counter
	calendarExports    prometheus.Counter
	httpRequests       *prometheus.CounterVec
	httpRequestLatency *prometheus.HistogramVec
	errorsByEndpoint   *prometheus.CounterVec
	errorsByType       *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide metrics registry

var globalManager = NewManager(WithPrometheusRegistry(customRegistry)) //nolint:gochecknoglobals // singleton recorders

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "festgrid",
		subsystem:        "schedule",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.layoutRuns = m.counter("layout_runs_total", "Number of layout recomputations")
	m.layoutDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "layout_duration_milliseconds",
		Help:        "Time spent resolving the festival grid layout",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
	m.positionedEvents = m.gauge("positioned_events", "Events placed on the grid by the last layout")
	m.droppedEvents = m.counterVec("dropped_events_total", "Events excluded from layout by reason", "reason")
	m.overlapGroups = m.gauge("overlap_groups", "Overlap groups in the last layout")
	m.maxLanes = m.gauge("max_lanes", "Widest overlap group in the last layout")
	m.snapshotCacheHits = m.counter("snapshot_cache_hits_total", "Layout requests served from an unchanged snapshot")
	m.storedEvents = m.gauge("stored_events", "Events currently held by the store")
	m.seedReloads = m.counterVec("seed_reloads_total", "Scheduled reloads of the events file by result", "result")
	m.hintDismissals = m.counter("zoom_hint_dismissals_total", "Times the zoom hint was dismissed")
	m.calendarExports = m.counter("calendar_exports_total", "iCalendar exports served")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint", "endpoint", "method", "error_type")
	m.errorsByType = m.counterVec("errors_by_type_total", "Errors by type", "error_type", "severity")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap memory in use")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordLayoutRun counts a layout recomputation and its duration.
func RecordLayoutRun(durationMs float64) {
	globalManager.layoutRuns.Inc()
	globalManager.layoutDuration.Observe(durationMs)
}

// UpdateLayoutShape publishes the size of the last layout.
func UpdateLayoutShape(positioned, groups, lanes int) {
	globalManager.positionedEvents.Set(float64(positioned))
	globalManager.overlapGroups.Set(float64(groups))
	globalManager.maxLanes.Set(float64(lanes))
}

// RecordDroppedEvent counts an event excluded from layout.
func RecordDroppedEvent(reason string) {
	globalManager.droppedEvents.WithLabelValues(reason).Inc()
}

// RecordSnapshotCacheHit counts a layout served without recomputation.
func RecordSnapshotCacheHit() {
	globalManager.snapshotCacheHits.Inc()
}

// UpdateStoredEvents sets the number of stored events.
func UpdateStoredEvents(n int) {
	globalManager.storedEvents.Set(float64(n))
}

// RecordSeedReload counts a scheduled reload; result is "ok" or "error".
func RecordSeedReload(result string) {
	globalManager.seedReloads.WithLabelValues(result).Inc()
}

// RecordHintDismissal counts a zoom hint dismissal.
func RecordHintDismissal() {
	globalManager.hintDismissals.Inc()
}

// RecordCalendarExport counts an iCalendar export.
func RecordCalendarExport() {
	globalManager.calendarExports.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestLatency.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets the heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry festgrid metrics are registered on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
