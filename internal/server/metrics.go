package server

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opskit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "opskit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	playbookRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "opskit",
			Subsystem: "ansible",
			Name:      "playbook_runs_total",
			Help:      "Playbook runs triggered over the API.",
		},
		[]string{"returncode"},
	)
	playbookDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "opskit",
			Subsystem: "ansible",
			Name:      "playbook_run_duration_seconds",
			Help:      "Playbook run duration in seconds.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
	)
)

func registerMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, playbookRuns, playbookDuration)
	})
}

func recordHTTPRequest(method, path string, status int, duration time.Duration) {
	registerMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func recordPlaybookRun(returncode int, duration time.Duration) {
	registerMetrics()
	playbookRuns.WithLabelValues(strconv.Itoa(returncode)).Inc()
	playbookDuration.Observe(duration.Seconds())
}
