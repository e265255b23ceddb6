package service

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for solver runs.
type MetricsService struct {
	registry            *prometheus.Registry
	handler             http.Handler
	runTotal            *prometheus.CounterVec
	runDuration         prometheus.Histogram
	scheduledActivities prometheus.Histogram
}

// NewMetricsService registers the solver collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	runTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fet_runs_total",
		Help: "Total number of solver runs by terminal status",
	}, []string{"status"})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fet_run_duration_seconds",
		Help:    "Wall-clock duration of solver executions",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	scheduledActivities := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fet_scheduled_activities",
		Help:    "Number of activities decoded from solver output per run",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(runTotal, runDuration, scheduledActivities, goroutines)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		runTotal:            runTotal,
		runDuration:         runDuration,
		scheduledActivities: scheduledActivities,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveRun records one solver execution with its terminal status.
func (m *MetricsService) ObserveRun(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.runTotal.WithLabelValues(status).Inc()
	m.runDuration.Observe(duration.Seconds())
}

// ObserveScheduledActivities records the decoded schedule size.
func (m *MetricsService) ObserveScheduledActivities(count int) {
	if m == nil {
		return
	}
	m.scheduledActivities.Observe(float64(count))
}
