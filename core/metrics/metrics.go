package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "object_resolver"

// Metrics holds the collectors for resolution and transfer operations.
type Metrics struct {
	registry *prometheus.Registry

	patternsResolved prometheus.Counter
	keysMatched      prometheus.Counter
	patternKeys      prometheus.Histogram
	listPages        prometheus.Counter
	listFailures     prometheus.Counter
	transferBytes    *prometheus.CounterVec
	transferErrors   *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry.
// Process and Go runtime collectors are registered when withRuntime is true.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		patternsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patterns_resolved_total",
			Help:      "Total number of patterns fully listed",
		}),
		keysMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keys_matched_total",
			Help:      "Total number of keys produced by pattern resolution",
		}),
		patternKeys: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pattern_keys",
			Help:      "Number of keys matched per pattern",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		listPages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_pages_total",
			Help:      "Total number of listing pages fetched",
		}),
		listFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_failures_total",
			Help:      "Total number of failed listing calls",
		}),
		transferBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfer_bytes_total",
			Help:      "Bytes moved by transfer operations",
		}, []string{"op"}),
		transferErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfer_errors_total",
			Help:      "Failed transfer operations",
		}, []string{"op"}),
	}

	m.registry.MustRegister(
		m.patternsResolved,
		m.keysMatched,
		m.patternKeys,
		m.listPages,
		m.listFailures,
		m.transferBytes,
		m.transferErrors,
	)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Registry returns the registry holding all collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObservePattern records the keys matched by one fully listed pattern.
func (m *Metrics) ObservePattern(matched int) {
	if m == nil {
		return
	}
	m.patternsResolved.Inc()
	m.keysMatched.Add(float64(matched))
	m.patternKeys.Observe(float64(matched))
}

// ObservePage records one listing call.
func (m *Metrics) ObservePage(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.listFailures.Inc()
		return
	}
	m.listPages.Inc()
}

// ObserveTransfer records the outcome of a download, upload or stat.
func (m *Metrics) ObserveTransfer(op string, bytes int64, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.transferErrors.WithLabelValues(op).Inc()
		return
	}
	m.transferBytes.WithLabelValues(op).Add(float64(bytes))
}
