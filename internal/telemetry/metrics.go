package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики analysis flow и фоновой очереди.
// Экспонируются через /metrics (promhttp) в cmd/mealflow-api.
var (
	flowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealflow_flows_total",
		Help: "Completed analysis flows by aggregate status",
	}, []string{"status"})

	flowDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mealflow_flow_duration_seconds",
		Help:    "Wall-clock duration of an analysis flow",
		Buckets: prometheus.DefBuckets,
	})

	stepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mealflow_step_duration_seconds",
		Help:    "Duration of a single flow step by name and outcome",
		Buckets: prometheus.DefBuckets,
	}, []string{"step", "status"})

	jobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealflow_jobs_total",
		Help: "Background jobs reaching a terminal status",
	}, []string{"status"})

	jobsInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mealflow_jobs_inflight",
		Help: "Background jobs currently queued or running",
	})
)

// ObserveFlow фиксирует завершение flow.
func ObserveFlow(status string, d time.Duration) {
	flowsTotal.WithLabelValues(status).Inc()
	flowDuration.Observe(d.Seconds())
}

// ObserveStep фиксирует завершение одного шага.
func ObserveStep(step, status string, d time.Duration) {
	stepDuration.WithLabelValues(step, status).Observe(d.Seconds())
}

// JobStarted фиксирует постановку job в очередь.
func JobStarted() {
	jobsInflight.Inc()
}

// JobFinished фиксирует достижение job терминального статуса.
func JobFinished(status string) {
	jobsInflight.Dec()
	jobsTotal.WithLabelValues(status).Inc()
}
