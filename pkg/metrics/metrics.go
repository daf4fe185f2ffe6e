package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Custom histogram buckets optimized for API response times ranging from
	// milliseconds to multi-second storage rewrites
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// Registry is the application-scoped metrics registry exposed on /api/metrics
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	serviceLabel string

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Storage Metrics (file store and postgres share the same series)
	StorageOpDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_operation_duration_seconds",
			Help:    "Storage backend operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"store", "operation", "status"},
	)

	StorageOpTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_operation_total",
			Help: "Total number of storage backend operations",
		},
		[]string{"store", "operation", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	// Business Metrics
	SlotMutations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorhub_slot_mutations_total",
			Help: "Total number of schedule slot mutations",
		},
		[]string{"operation", "status"},
	)

	BookingTransitions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorhub_booking_transitions_total",
			Help: "Total number of booking lifecycle transitions",
		},
		[]string{"transition", "status"},
	)

	SessionsCreated = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorhub_sessions_created_total",
			Help: "Total number of tutoring sessions created",
		},
		[]string{"status"},
	)

	NotificationsEmitted = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorhub_notifications_emitted_total",
			Help: "Total number of notifications emitted by fan-out",
		},
		[]string{"event_type", "status"},
	)

	LoginAttempts = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorhub_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// Init records the service name used as a constant label on dashboards.
func Init(serviceName string) {
	serviceLabel = serviceName
}

// ServiceName returns the service name registered via Init
func ServiceName() string {
	return serviceLabel
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}

// RecordSlotMutation counts the outcome of a schedule slot mutation
func RecordSlotMutation(operation, status string) {
	SlotMutations.WithLabelValues(operation, status).Inc()
}

// RecordBookingTransition counts the outcome of a booking lifecycle transition
func RecordBookingTransition(transition, status string) {
	BookingTransitions.WithLabelValues(transition, status).Inc()
}

// RecordSessionCreated counts a session scheduling attempt
func RecordSessionCreated(status string) {
	SessionsCreated.WithLabelValues(status).Inc()
}

// RecordNotificationEmitted counts one notification delivery attempt
func RecordNotificationEmitted(eventType, status string) {
	NotificationsEmitted.WithLabelValues(eventType, status).Inc()
}

// RecordLoginAttempt counts a login attempt outcome
func RecordLoginAttempt(status string) {
	LoginAttempts.WithLabelValues(status).Inc()
}
