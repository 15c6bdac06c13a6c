// Package metrics provides Prometheus metrics for the trajetviz service.
package metrics

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HealthChecker reports whether the search backend answers.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Rendering metrics
	TripsRendered *prometheus.CounterVec
	LayersStaged  prometheus.Histogram

	// Search backend metrics
	BackendRequestDuration *prometheus.HistogramVec
	BackendUp              prometheus.Gauge

	logger *slog.Logger

	// collectorStarted prevents spawning multiple collector goroutines
	collectorStarted atomic.Bool

	// cancel stops the backend health collector goroutine
	cancel context.CancelFunc

	wg sync.WaitGroup
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	return NewWithLogger(nil)
}

// NewWithLogger creates metrics with a logger for error reporting.
func NewWithLogger(logger *slog.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trajetviz_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trajetviz_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	tripsRendered := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trajetviz_trips_rendered_total",
			Help: "Trips rendered, by view (cards, details, route, page)",
		},
		[]string{"view"},
	)

	layersStaged := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "trajetviz_layers_staged",
		Help:    "Map layers staged per displayed trip",
		Buckets: prometheus.LinearBuckets(3, 2, 8),
	})

	backendRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trajetviz_backend_request_duration_seconds",
			Help:    "Latency of calls to the journey search backend",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "outcome"},
	)

	backendUp := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trajetviz_backend_up",
		Help: "1 when the last backend health check succeeded",
	})

	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		tripsRendered,
		layersStaged,
		backendRequestDuration,
		backendUp,
	)

	return &Metrics{
		Registry:               registry,
		HTTPRequestsTotal:      httpRequestsTotal,
		HTTPRequestDuration:    httpRequestDuration,
		TripsRendered:          tripsRendered,
		LayersStaged:           layersStaged,
		BackendRequestDuration: backendRequestDuration,
		BackendUp:              backendUp,
		logger:                 logger,
	}
}

// ObserveBackend records one backend call.
func (m *Metrics) ObserveBackend(endpoint string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.BackendRequestDuration.WithLabelValues(endpoint, outcome).Observe(d.Seconds())
}

// StartBackendHealthCollector checks the backend every interval and updates
// BackendUp. Calling it more than once has no effect. Call Shutdown to stop it.
func (m *Metrics) StartBackendHealthCollector(checker HealthChecker, interval time.Duration) {
	if checker == nil {
		return
	}

	if !m.collectorStarted.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Add to WaitGroup before exposing cancel to avoid racing Shutdown
	m.wg.Add(1)
	m.cancel = cancel

	go func() {
		defer m.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				if m.logger != nil {
					m.logger.Error("panic in backend health collector", "error", r)
				}
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				checkCtx, checkCancel := context.WithTimeout(ctx, interval)
				if checker.Healthy(checkCtx) {
					m.BackendUp.Set(1)
				} else {
					m.BackendUp.Set(0)
				}
				checkCancel()

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Shutdown stops the health collector goroutine and waits for it to exit.
// It is safe to call multiple times.
func (m *Metrics) Shutdown() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}
