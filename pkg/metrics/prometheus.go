// Package metrics provides Prometheus metrics for the swim tracker
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Ingest metrics - the write path from scraper to store
	resultsIngested   prometheus.Counter
	resultsReingested prometheus.Counter
	resultsDuplicate  prometheus.Counter
	resultsNoTime     prometheus.Counter
	parseFailures     prometheus.Counter
	degradedLabels    prometheus.Counter

	// Engine metrics - classification and forecasting reads
	classifications      *prometheus.CounterVec
	unknownStandards     prometheus.Counter
	forecasts            *prometheus.CounterVec
	forecastInsufficient prometheus.Counter

	// Store metrics
	storeResults       prometheus.Gauge
	storeEvents        prometheus.Gauge
	storeErrors        prometheus.Counter
	storeUpdateLatency prometheus.Histogram
	storeQueryLatency  prometheus.Histogram

	// Queue metrics
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	queueUtilization       prometheus.Gauge
	queueEnqueueRate       prometheus.Counter
	queueDequeueRate       prometheus.Counter
	queueEnqueueErrors     prometheus.Counter
	queueProcessingLatency prometheus.Histogram

	// Worker metrics
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrorRate         prometheus.Counter

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
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

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "swimtracker",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
	m.registry.MustRegister(c)
	return c
}

func (m *Manager) counterVec(name, help string, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	}, labels)
	m.registry.MustRegister(c)
	return c
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
	})
	m.registry.MustRegister(g)
	return g
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
		Buckets:   m.histogramBuckets,
	})
	m.registry.MustRegister(h)
	return h
}

func (m *Manager) histogramVec(name, help string, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      name,
		Help:      help,
		Buckets:   m.histogramBuckets,
	}, labels)
	m.registry.MustRegister(h)
	return h
}

//nolint:funlen // metric declarations are long by nature
func (m *Manager) initializeMetrics() {
	// Ingest
	m.resultsIngested = m.counter("results_ingested_total", "Raw results normalized and stored for the first time")
	m.resultsReingested = m.counter("results_reingested_total", "Raw results overwriting an already stored id")
	m.resultsDuplicate = m.counter("results_duplicate_total", "Raw result submissions acked as duplicates before enqueue")
	m.resultsNoTime = m.counter("results_no_time_total", "Stored results without a valid finish (DQ, Pending, NS)")
	m.parseFailures = m.counter("parse_failures_total", "Raw results skipped because the time text was malformed")
	m.degradedLabels = m.counter("degraded_labels_total", "Event labels parsed to an unknown stroke")

	// Engine
	m.classifications = m.counterVec("classifications_total", "Swim classifications by achieved tier", []string{"tier"})
	m.unknownStandards = m.counter("unknown_standards_total", "Classification requests with no tier table for the event and age group")
	m.forecasts = m.counterVec("forecasts_total", "Forecasts computed by confidence label", []string{"confidence"})
	m.forecastInsufficient = m.counter("forecasts_insufficient_total", "Forecast requests with fewer than two valid swims")

	// Store
	m.storeResults = m.gauge("store_results", "Results currently stored")
	m.storeEvents = m.gauge("store_events", "Distinct event labels currently stored")
	m.storeErrors = m.counter("store_errors_total", "Store write failures")
	m.storeUpdateLatency = m.histogram("store_update_latency_microseconds", "Store upsert latency")
	m.storeQueryLatency = m.histogram("store_query_latency_microseconds", "Store snapshot query latency")

	// Queue
	m.queueSize = m.gauge("queue_size", "Raw results currently queued")
	m.queueCapacity = m.gauge("queue_capacity", "Configured queue capacity")
	m.queueUtilization = m.gauge("queue_utilization", "Queue fill ratio 0..1")
	m.queueEnqueueRate = m.counter("queue_enqueue_total", "Successful enqueues")
	m.queueDequeueRate = m.counter("queue_dequeue_total", "Successful dequeues")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Rejected enqueues")
	m.queueProcessingLatency = m.histogram("queue_processing_latency_ms", "Enqueue path latency")

	// Workers
	m.workerCount = m.gauge("worker_count", "Normalization workers running")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_ms", "Per raw result processing latency")
	m.workerErrorRate = m.counter("worker_errors_total", "Worker processing errors")

	// HTTP
	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint, method, status", []string{"endpoint", "method", "status"})
	m.httpRequestDuration = m.histogramVec("http_request_duration_ms", "HTTP request latency", []string{"endpoint", "method", "status"})

	// Errors
	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", []string{"component", "error_type"})
	m.errorRateByType = m.counterVec("errors_by_type_total", "Errors by type and severity", []string{"error_type", "severity"})
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "HTTP errors by endpoint, method, type", []string{"endpoint", "method", "error_type"})
	m.errorLatency = m.histogramVec("error_latency_ms", "Latency of failed operations", []string{"component", "error_type"})

	// System
	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Allocated heap bytes")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Goroutine count")
	m.systemGCPauseTime = m.histogram("system_gc_pause_ms", "Average GC pause time")
}

// GetRegistry returns the registry backing the global manager, for serving
// /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager. They are no-ops when
// metrics are disabled.

// RecordResultIngested counts a newly stored result.
func RecordResultIngested() {
	if globalManager.enabled {
		globalManager.resultsIngested.Inc()
	}
}

// RecordResultReingested counts an idempotent overwrite of a stored id.
func RecordResultReingested() {
	if globalManager.enabled {
		globalManager.resultsReingested.Inc()
	}
}

// RecordResultDuplicate counts a raw submission acked as a duplicate.
func RecordResultDuplicate() {
	if globalManager.enabled {
		globalManager.resultsDuplicate.Inc()
	}
}

// RecordNoTimeResult counts a stored no-time swim.
func RecordNoTimeResult() {
	if globalManager.enabled {
		globalManager.resultsNoTime.Inc()
	}
}

// RecordParseFailure counts a skipped malformed raw result.
func RecordParseFailure() {
	if globalManager.enabled {
		globalManager.parseFailures.Inc()
	}
}

// RecordDegradedLabel counts an event label with no recognized stroke.
func RecordDegradedLabel() {
	if globalManager.enabled {
		globalManager.degradedLabels.Inc()
	}
}

// RecordClassification counts a classification by achieved tier.
func RecordClassification(tier string) {
	if globalManager.enabled {
		globalManager.classifications.WithLabelValues(tier).Inc()
	}
}

// RecordUnknownStandard counts a lookup with no tier table.
func RecordUnknownStandard() {
	if globalManager.enabled {
		globalManager.unknownStandards.Inc()
	}
}

// RecordForecast counts a computed forecast by confidence.
func RecordForecast(confidence string) {
	if globalManager.enabled {
		globalManager.forecasts.WithLabelValues(confidence).Inc()
	}
}

// RecordForecastInsufficient counts a forecast request without enough data.
func RecordForecastInsufficient() {
	if globalManager.enabled {
		globalManager.forecastInsufficient.Inc()
	}
}

// UpdateStoreResults sets the stored result gauge.
func UpdateStoreResults(n int) {
	if globalManager.enabled {
		globalManager.storeResults.Set(float64(n))
	}
}

// UpdateStoreEvents sets the distinct event gauge.
func UpdateStoreEvents(n int) {
	if globalManager.enabled {
		globalManager.storeEvents.Set(float64(n))
	}
}

// RecordStoreError counts a store write failure.
func RecordStoreError() {
	if globalManager.enabled {
		globalManager.storeErrors.Inc()
	}
}

// RecordStoreUpdateLatency records an upsert latency sample.
func RecordStoreUpdateLatency(us float64) {
	if globalManager.enabled {
		globalManager.storeUpdateLatency.Observe(us)
	}
}

// RecordStoreQueryLatency records a snapshot query latency sample.
func RecordStoreQueryLatency(us float64) {
	if globalManager.enabled {
		globalManager.storeQueryLatency.Observe(us)
	}
}

// UpdateQueueSize sets the queued result gauge.
func UpdateQueueSize(n int) {
	if globalManager.enabled {
		globalManager.queueSize.Set(float64(n))
	}
}

// UpdateQueueCapacity sets the configured capacity gauge.
func UpdateQueueCapacity(n int) {
	if globalManager.enabled {
		globalManager.queueCapacity.Set(float64(n))
	}
}

// UpdateQueueUtilization sets the queue fill ratio gauge.
func UpdateQueueUtilization(ratio float64) {
	if globalManager.enabled {
		globalManager.queueUtilization.Set(ratio)
	}
}

// RecordQueueEnqueue counts a successful enqueue.
func RecordQueueEnqueue() {
	if globalManager.enabled {
		globalManager.queueEnqueueRate.Inc()
	}
}

// RecordQueueDequeue counts a successful dequeue.
func RecordQueueDequeue() {
	if globalManager.enabled {
		globalManager.queueDequeueRate.Inc()
	}
}

// RecordQueueEnqueueError counts a rejected enqueue.
func RecordQueueEnqueueError() {
	if globalManager.enabled {
		globalManager.queueEnqueueErrors.Inc()
	}
}

// RecordQueueProcessingLatency records an enqueue path latency sample.
func RecordQueueProcessingLatency(ms float64) {
	if globalManager.enabled {
		globalManager.queueProcessingLatency.Observe(ms)
	}
}

// UpdateWorkerCount sets the running worker gauge.
func UpdateWorkerCount(n int) {
	if globalManager.enabled {
		globalManager.workerCount.Set(float64(n))
	}
}

// RecordWorkerProcessingLatency records a per-result latency sample.
func RecordWorkerProcessingLatency(ms float64) {
	if globalManager.enabled {
		globalManager.workerProcessingLatency.Observe(ms)
	}
}

// RecordWorkerError counts a worker processing error.
func RecordWorkerError() {
	if globalManager.enabled {
		globalManager.workerErrorRate.Inc()
	}
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration records an HTTP latency sample.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
	}
}

// RecordErrorByComponent counts an error by component and type.
func RecordErrorByComponent(component, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	if globalManager.enabled {
		globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint counts an HTTP error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RecordErrorLatency records the latency of a failed operation.
func RecordErrorLatency(component, errorType string, ms float64) {
	if globalManager.enabled {
		globalManager.errorLatency.WithLabelValues(component, errorType).Observe(ms)
	}
}

// UpdateSystemMemoryUsage sets the heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(n))
	}
}

// RecordSystemGCPauseTime records an average GC pause sample.
func RecordSystemGCPauseTime(ms float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Observe(ms)
	}
}
