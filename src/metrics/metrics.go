package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Chart outcome labels.
const (
	StatusOK          = "ok"
	StatusInput       = "input_error"
	StatusComputation = "computation_error"
	StatusInternal    = "internal_error"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Chart metrics
	ChartsComputed        *prometheus.CounterVec
	ChartDuration         prometheus.Histogram
	AnnualReturnIterCount prometheus.Histogram
	ChartsArchived        *prometheus.CounterVec
	WebsocketClients      prometheus.Gauge
}

// -----------------------------------------------------------------------------

// NewCollector creates a collector with its own registry under namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	chartsComputed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charts_computed_total",
			Help:      "Total number of chart calculations by outcome",
		},
		[]string{"status"},
	)

	chartDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chart_compute_seconds",
			Help:      "Chart calculation duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	annualIterations := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "annual_return_iterations",
			Help:      "Iterations needed for the annual return to converge",
			Buckets:   []float64{1, 2, 3, 4, 5, 8, 13, 21, 34, 50},
		},
	)

	chartsArchived := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charts_archived_total",
			Help:      "Total number of archive writes by outcome",
		},
		[]string{"status"},
	)

	wsClients := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Currently connected websocket clients",
		},
	)

	// Register all metrics with the registry
	registry.MustRegister(
		httpRequests,
		httpDuration,
		chartsComputed,
		chartDuration,
		annualIterations,
		chartsArchived,
		wsClients,
	)

	return &Collector{
		registry:              registry,
		HTTPRequests:          httpRequests,
		HTTPDuration:          httpDuration,
		ChartsComputed:        chartsComputed,
		ChartDuration:         chartDuration,
		AnnualReturnIterCount: annualIterations,
		ChartsArchived:        chartsArchived,
		WebsocketClients:      wsClients,
	}
}

// -----------------------------------------------------------------------------

// ObserveChart records one calculation. iterations is ignored unless the
// chart succeeded.
func (c *Collector) ObserveChart(status string, elapsed time.Duration, iterations int) {
	c.ChartsComputed.WithLabelValues(status).Inc()
	c.ChartDuration.Observe(elapsed.Seconds())
	if status == StatusOK && iterations > 0 {
		c.AnnualReturnIterCount.Observe(float64(iterations))
	}
}

// ObserveArchive records one archive write.
func (c *Collector) ObserveArchive(err error) {
	status := StatusOK
	if err != nil {
		status = StatusInternal
	}
	c.ChartsArchived.WithLabelValues(status).Inc()
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// -----------------------------------------------------------------------------

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
