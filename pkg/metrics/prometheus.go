// Package metrics provides Prometheus metrics for the evaluation routing service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core business metrics: what moves through the approval pipeline.
	workSubmitted    prometheus.Counter
	evaluationsTotal *prometheus.CounterVec // by decision
	escalationsTotal *prometheus.CounterVec // by target stage
	itemsCompleted   *prometheus.CounterVec // by terminal status
	evaluateLatency  prometheus.Histogram

	// Operational health metrics.
	pendingItems     prometheus.Gauge
	totalWorkItems   prometheus.Gauge
	totalEmployees   prometheus.Gauge
	committeeMembers *prometheus.GaugeVec // by stage
	ledgerSize       prometheus.Gauge

	// HTTP performance metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Audit pipeline metrics.
	auditEvents     *prometheus.CounterVec // by kind
	auditQueueSize  prometheus.Gauge
	auditDropsTotal prometheus.Counter

	// Error tracking.
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
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
		namespace:        "pwa",
		subsystem:        "evaluation",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.workSubmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "work_submitted_total",
		Help:      "Total number of work results submitted",
	})

	m.evaluationsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "evaluations_total",
			Help:      "Total number of evaluation decisions recorded",
		},
		[]string{"decision"},
	)

	m.escalationsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "escalations_total",
			Help:      "Total number of work items escalated to a committee stage",
		},
		[]string{"stage"},
	)

	m.itemsCompleted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "items_completed_total",
			Help:      "Total number of work items reaching a terminal status",
		},
		[]string{"status"},
	)

	m.evaluateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluate_latency_milliseconds",
		Help:      "End-to-end latency of evaluate calls in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.pendingItems = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pending_items",
		Help:      "Number of work items currently in PENDING status",
	})

	m.totalWorkItems = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "work_items",
		Help:      "Total number of work items tracked in the store",
	})

	m.totalEmployees = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "employees",
		Help:      "Number of employees loaded in the directory",
	})

	m.committeeMembers = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "committee_members",
			Help:      "Number of committee memberships by stage",
		},
		[]string{"stage"},
	)

	m.ledgerSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_records",
		Help:      "Number of records in the evaluation ledger",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.auditEvents = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "audit_events_total",
			Help:      "Total number of audit events recorded",
		},
		[]string{"kind"},
	)

	m.auditQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_queue_size",
		Help:      "Number of audit events waiting in the queue",
	})

	m.auditDropsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "audit_drops_total",
		Help:      "Total number of audit events dropped on backpressure",
	})

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)
}

// RecordWorkSubmitted increments the submitted work counter.
func RecordWorkSubmitted() {
	globalManager.workSubmitted.Inc()
}

// RecordEvaluation increments the evaluations counter for a decision.
func RecordEvaluation(decision string) {
	globalManager.evaluationsTotal.WithLabelValues(decision).Inc()
}

// RecordEscalation increments the escalations counter for a target stage.
func RecordEscalation(stage string) {
	globalManager.escalationsTotal.WithLabelValues(stage).Inc()
}

// RecordItemCompleted increments the terminal-outcome counter for a status.
func RecordItemCompleted(status string) {
	globalManager.itemsCompleted.WithLabelValues(status).Inc()
}

// RecordEvaluateLatency records evaluate call latency in milliseconds.
func RecordEvaluateLatency(latencyMs float64) {
	globalManager.evaluateLatency.Observe(latencyMs)
}

// UpdatePendingItems sets the current number of pending work items.
func UpdatePendingItems(count int) {
	globalManager.pendingItems.Set(float64(count))
}

// UpdateTotalWorkItems sets the total number of tracked work items.
func UpdateTotalWorkItems(count int) {
	globalManager.totalWorkItems.Set(float64(count))
}

// UpdateTotalEmployees sets the directory employee count.
func UpdateTotalEmployees(count int) {
	globalManager.totalEmployees.Set(float64(count))
}

// UpdateCommitteeMembers sets the membership count for a stage.
func UpdateCommitteeMembers(stage string, count int) {
	globalManager.committeeMembers.WithLabelValues(stage).Set(float64(count))
}

// UpdateLedgerSize sets the evaluation ledger size.
func UpdateLedgerSize(count int) {
	globalManager.ledgerSize.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordAuditEvent increments the audit event counter for a kind.
func RecordAuditEvent(kind string) {
	globalManager.auditEvents.WithLabelValues(kind).Inc()
}

// UpdateAuditQueueSize sets the current audit queue depth.
func UpdateAuditQueueSize(count int) {
	globalManager.auditQueueSize.Set(float64(count))
}

// RecordAuditDrop increments the dropped audit event counter.
func RecordAuditDrop() {
	globalManager.auditDropsTotal.Inc()
}

// RecordErrorByComponent increments the per-component error counter.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint increments the per-endpoint error counter.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by the service.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
