package backend

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// clientMetrics holds prometheus metrics registered for the client.
type clientMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	m := &clientMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lingodesk",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total backend API calls by operation and status.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lingodesk",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Backend API call duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.requests); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("backend: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("backend: register metric: %w", err)
	}
	return nil
}

// observer provides logging and metrics for backend calls.
type observer struct {
	logger  *zap.Logger
	metrics *clientMetrics
}

func newObserver(logger *zap.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *clientMetrics
	if reg != nil {
		var err error
		m, err = newClientMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.requests.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger != nil {
		if err != nil {
			o.logger.Warn("backend call failed",
				zap.String("op", op),
				zap.Duration("duration", dur),
				zap.Error(err),
			)
		} else {
			o.logger.Debug("backend call completed",
				zap.String("op", op),
				zap.Duration("duration", dur),
			)
		}
	}
}
