package metrics

import "github.com/prometheus/client_golang/prometheus"

// UI Prometheus metrics.
var (
	UINoticesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lingodesk",
			Subsystem: "ui",
			Name:      "notices_total",
			Help:      "Notices shown to users by level",
		},
		[]string{"level"}, // info / success / warning / danger
	)

	UIDroppedEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lingodesk",
			Subsystem: "ui",
			Name:      "dropped_events_total",
			Help:      "Events dropped because their control was busy",
		},
		[]string{"control"},
	)

	SessionOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lingodesk",
			Subsystem: "session",
			Name:      "operations_total",
			Help:      "Session store operations by driver and result",
		},
		[]string{"driver", "op", "status"},
	)
)

var uiMetricsRegistered bool

// RegisterUIMetrics registers UI and session metrics. Must be called once from main.
func RegisterUIMetrics() {
	if uiMetricsRegistered {
		return
	}
	prometheus.MustRegister(UINoticesTotal)
	prometheus.MustRegister(UIDroppedEventsTotal)
	prometheus.MustRegister(SessionOpsTotal)
	uiMetricsRegistered = true
}
