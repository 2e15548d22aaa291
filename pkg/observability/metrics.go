package observability

import (
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by engine hooks.
type Metrics struct {
	Processed    *prometheus.CounterVec
	Invalidated  *prometheus.CounterVec
	CascadeDepth prometheus.Histogram
	Links        prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is convenient in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Processed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pictograph_node_processed_total",
				Help: "Number of successful node computations",
			},
			[]string{"variant"},
		),
		Invalidated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pictograph_node_invalidated_total",
				Help: "Number of node invalidations",
			},
			[]string{"variant"},
		),
		CascadeDepth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pictograph_cascade_depth",
				Help:    "Notification depth at which nodes were processed",
				Buckets: prometheus.LinearBuckets(0, 1, 8),
			},
		),
		Links: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pictograph_links",
				Help: "Number of connected input terminals",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Processed, m.Invalidated, m.CascadeDepth, m.Links)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnProcess: func(e *domain.NodeEvent) {
			m.Processed.WithLabelValues(e.NodeType).Inc()
			m.CascadeDepth.Observe(float64(e.Depth))
		},
		OnInvalidate: func(e *domain.NodeEvent) {
			m.Invalidated.WithLabelValues(e.NodeType).Inc()
		},
		OnConnect: func(*domain.LinkEvent) {
			m.Links.Inc()
		},
		OnDisconnect: func(*domain.LinkEvent) {
			m.Links.Dec()
		},
	}
}
