package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/urltree"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "urltree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for parse and request duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "urltree",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for the codec middleware.
type metrics struct {
	parsesTotal     *prometheus.CounterVec
	parseDuration   prometheus.Histogram
	parseErrors     *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
}

// globalMetrics is the singleton metrics instance, created on the first call
// to Prometheus(). RouteTree records into it when present.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		parsesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "parses_total",
			Help:        "Total number of route URL parses by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		parseDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "parse_duration_seconds",
			Help:        "Route URL parse duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		parseErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "parse_errors_total",
			Help:        "Total number of route URL parse failures by error type",
			ConstLabels: config.ConstLabels,
		}, []string{"error_type"}),

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of HTTP requests by response status code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		requestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

// Prometheus creates middleware that collects request metrics and arms the
// parse metrics recorded by RouteTree.
//
// Metrics collected:
//   - urltree_parses_total: Counter of parses by status (ok/error)
//   - urltree_parse_duration_seconds: Histogram of parse duration
//   - urltree_parse_errors_total: Counter of parse failures by error type
//   - urltree_requests_total: Counter of requests by response status code
//   - urltree_request_duration_seconds: Histogram of request duration
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus(middleware.WithNamespace("myapp")))
//	r.Use(middleware.RouteTree())
//	r.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Initialize metrics once
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			m.requestDuration.Observe(time.Since(start).Seconds())
			m.requestsTotal.WithLabelValues(strconv.Itoa(rec.recordedStatus())).Inc()
		})
	}
}

// recordParse records one parse outcome. It is a no-op until Prometheus()
// has initialized the global metrics.
func recordParse(duration time.Duration, err error) {
	globalMetricsMu.Lock()
	m := globalMetrics
	globalMetricsMu.Unlock()
	if m == nil {
		return
	}

	m.parseDuration.Observe(duration.Seconds())
	if err == nil {
		m.parsesTotal.WithLabelValues("ok").Inc()
		return
	}
	m.parsesTotal.WithLabelValues("error").Inc()
	m.parseErrors.WithLabelValues(categorizeParseError(err)).Inc()
}

// categorizeParseError maps a parse error to a bounded label value, keeping
// error-message cardinality out of the metric.
func categorizeParseError(err error) string {
	switch {
	case errors.Is(err, urltree.ErrEmptySegment):
		return "empty_segment"
	case errors.Is(err, urltree.ErrUnterminatedGroup):
		return "unterminated_group"
	case errors.Is(err, urltree.ErrUnexpectedToken):
		return "unexpected_token"
	case errors.Is(err, urltree.ErrInvalidEscape):
		return "invalid_escape"
	default:
		return "internal"
	}
}
