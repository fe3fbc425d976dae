// Package metrics exposes Prometheus counters for document loads.
//
// Metrics:
//   - <ns>_documents_loaded_total{status}: loads by outcome (ok, error)
//   - <ns>_load_duration_seconds: wall time of a single load
//   - <ns>_canvases_parsed_total{kind}: canvases by kind (root, nested, inline)
//   - <ns>_value_nodes_parsed_total{kind}: value nodes by structural kind
//   - <ns>_references_resolved_total: elements resolved to an existing object
//   - <ns>_diagnostics_total{code}: warnings collected in lenient mode
//
// A nil *Collector is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name unless overridden.
const DefaultNamespace = "canvasdoc"

type Collector struct {
	documentsLoaded    *prometheus.CounterVec
	loadDuration       prometheus.Histogram
	canvasesParsed     *prometheus.CounterVec
	valueNodesParsed   *prometheus.CounterVec
	referencesResolved prometheus.Counter
	diagnostics        *prometheus.CounterVec
}

// NewCollector creates the load metrics and registers them with registry.
func NewCollector(namespace string, registry *prometheus.Registry) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	c := &Collector{
		documentsLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_loaded_total",
				Help:      "Total number of document loads by outcome",
			},
			[]string{"status"},
		),
		loadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "load_duration_seconds",
				Help:      "Duration of a single document load in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16), // 100µs to ~3s
			},
		),
		canvasesParsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "canvases_parsed_total",
				Help:      "Total number of canvases parsed by kind",
			},
			[]string{"kind"},
		),
		valueNodesParsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "value_nodes_parsed_total",
				Help:      "Total number of value nodes parsed by kind",
			},
			[]string{"kind"},
		),
		referencesResolved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "references_resolved_total",
				Help:      "Total number of elements resolved to an already parsed object",
			},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "diagnostics_total",
				Help:      "Total number of warnings collected during lenient loads",
			},
			[]string{"code"},
		),
	}

	registry.MustRegister(
		c.documentsLoaded,
		c.loadDuration,
		c.canvasesParsed,
		c.valueNodesParsed,
		c.referencesResolved,
		c.diagnostics,
	)
	return c
}

// DocumentLoaded records the outcome and duration of one load.
func (c *Collector) DocumentLoaded(status string, d time.Duration) {
	if c == nil {
		return
	}
	c.documentsLoaded.WithLabelValues(status).Inc()
	c.loadDuration.Observe(d.Seconds())
}

func (c *Collector) CanvasParsed(kind string) {
	if c == nil {
		return
	}
	c.canvasesParsed.WithLabelValues(kind).Inc()
}

func (c *Collector) ValueNodeParsed(kind string) {
	if c == nil {
		return
	}
	c.valueNodesParsed.WithLabelValues(kind).Inc()
}

func (c *Collector) ReferenceResolved() {
	if c == nil {
		return
	}
	c.referencesResolved.Inc()
}

func (c *Collector) Diagnostic(code string) {
	if c == nil {
		return
	}
	c.diagnostics.WithLabelValues(code).Inc()
}
