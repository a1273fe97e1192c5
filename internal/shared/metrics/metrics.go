// Package metrics 暴露 worker 的 Prometheus 指标。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics 任务调度循环的运行指标。
type WorkerMetrics struct {
	JobsClaimed   prometheus.Counter
	JobsCompleted *prometheus.CounterVec
	JobsFailed    *prometheus.CounterVec
	JobDuration   prometheus.Histogram
}

func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	m := &WorkerMetrics{
		JobsClaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parabellum",
			Subsystem: "worker",
			Name:      "jobs_claimed_total",
			Help:      "Jobs claimed from the pending queue.",
		}),
		JobsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parabellum",
			Subsystem: "worker",
			Name:      "jobs_completed_total",
			Help:      "Jobs completed, by task type.",
		}, []string{"task_type"}),
		JobsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parabellum",
			Subsystem: "worker",
			Name:      "jobs_failed_total",
			Help:      "Jobs failed, by task type.",
		}, []string{"task_type"}),
		JobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "parabellum",
			Subsystem: "worker",
			Name:      "job_duration_seconds",
			Help:      "Time spent handling a single job.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.JobsClaimed, m.JobsCompleted, m.JobsFailed, m.JobDuration)
	}
	return m
}

// Handler 指标采集端点，挂在独立的 metrics 地址上。
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
