package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus collectors of one server.
type metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration prometheus.Histogram
	renderedBytes  prometheus.Counter
}

func newMetrics(registry prometheus.Registerer, namespace string) *metrics {
	factory := promauto.With(registry)

	return &metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Total number of render requests",
		}, []string{"status"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent decoding and rendering a tree",
			Buckets:   prometheus.DefBuckets,
		}),

		renderedBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rendered_bytes_total",
			Help:      "Total number of HTML bytes produced",
		}),
	}
}
