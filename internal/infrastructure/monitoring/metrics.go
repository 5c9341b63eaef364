package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// File operation metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	EntriesProcessed  *prometheus.CounterVec

	// Session metrics
	EntriesListed   prometheus.Gauge
	EntriesSelected prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu   sync.RWMutex
	stop chan struct{}
	once sync.Once
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests   int64   `json:"total_requests"`
	TotalErrors     int64   `json:"total_errors"`
	TotalOperations int64   `json:"total_operations"`
	FailedEntries   int64   `json:"failed_entries"`
	TotalDuration   float64 `json:"total_duration"` // sum of all request durations
	RequestCount    int64   `json:"request_count"`  // count for averaging
}

// NewMetrics creates a new metrics collector with its own registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	m := &Metrics{
		registry:  registry,
		startTime: time.Now(),
		stop:      make(chan struct{}),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filedesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filedesk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filedesk_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filedesk_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// File operation metrics
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filedesk_operations_total",
				Help: "Total number of file manager operations",
			},
			[]string{"op", "status"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filedesk_operation_duration_seconds",
				Help:    "File manager operation duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30, 120},
			},
			[]string{"op"},
		),
		EntriesProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filedesk_entries_processed_total",
				Help: "Total number of entries copied, moved or deleted",
			},
			[]string{"op", "outcome"},
		),

		// Session metrics
		EntriesListed: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "filedesk_entries_listed",
				Help: "Number of entries in the current directory",
			},
		),
		EntriesSelected: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "filedesk_entries_selected",
				Help: "Number of selected entries",
			},
		),

		// System metrics
		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "filedesk_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Uptime.Set(time.Since(m.startTime).Seconds())
		case <-m.stop:
			return
		}
	}
}

// Close stops the uptime updater. Safe to call more than once.
func (m *Metrics) Close() {
	m.once.Do(func() { close(m.stop) })
}

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordOperation records a file manager operation
func (m *Metrics) RecordOperation(op, status string, duration time.Duration) {
	m.OperationsTotal.WithLabelValues(op, status).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalOperations++
	m.mu.Unlock()
}

// RecordEntries records per-entry outcomes of a batch
func (m *Metrics) RecordEntries(op string, succeeded, failed int) {
	m.EntriesProcessed.WithLabelValues(op, "success").Add(float64(succeeded))
	m.EntriesProcessed.WithLabelValues(op, "failure").Add(float64(failed))

	m.mu.Lock()
	m.snapshot.FailedEntries += int64(failed)
	m.mu.Unlock()
}

// SetSessionState sets the listed and selected entry gauges
func (m *Metrics) SetSessionState(listed, selected int) {
	m.EntriesListed.Set(float64(listed))
	m.EntriesSelected.Set(float64(selected))
}

// Snapshot returns a copy of the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
