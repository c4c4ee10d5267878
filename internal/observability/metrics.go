package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	controlDispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chaosctl",
			Subsystem: "controls",
			Name:      "dispatches_total",
			Help:      "Control hook dispatches.",
		},
		[]string{"control", "level", "outcome"},
	)
	controlDispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chaosctl",
			Subsystem: "controls",
			Name:      "dispatch_duration_seconds",
			Help:      "Control hook dispatch duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"control", "level", "outcome"},
	)
	controlHookMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chaosctl",
			Subsystem: "controls",
			Name:      "hook_misses_total",
			Help:      "Dispatches skipped because the module or hook was absent.",
		},
		[]string{"module", "hook"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chaosctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"app", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chaosctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"app", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			controlDispatches,
			controlDispatchDuration,
			controlHookMisses,
			httpRequests,
			httpDuration,
		)
	})
}

func RecordControlDispatch(control, level, outcome string, duration time.Duration) {
	RegisterMetrics()
	controlDispatches.WithLabelValues(control, level, outcome).Inc()
	controlDispatchDuration.WithLabelValues(control, level, outcome).
		Observe(duration.Seconds())
}

func RecordHookMiss(module, hook string) {
	RegisterMetrics()
	controlHookMisses.WithLabelValues(module, hook).Inc()
}

func RecordHTTPRequest(app, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(app, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(app, method, path, statusLabel).Observe(duration.Seconds())
}
