package netgen

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects Prometheus metrics for generation runs. It owns its
// registry so several generators (and tests) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	Species      prometheus.Gauge
	Reactions    prometheus.Gauge
	Iterations   prometheus.Counter
	Applications *prometheus.CounterVec
	Rejected     *prometheus.CounterVec
	RunDuration  prometheus.Histogram
}

// NewMetrics creates and registers the collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	species := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "species",
		Help:      "Number of species in the network being generated",
	})
	reactions := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reactions",
		Help:      "Number of reactions in the network being generated",
	})
	iterations := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "iterations_total",
		Help:      "Total number of species taken from the work queue",
	})
	applications := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_applications_total",
			Help:      "Total number of rule applications that produced a new reaction",
		},
		[]string{"rule"},
	)
	rejected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_products_total",
			Help:      "Total number of rejected rule products",
		},
		[]string{"rule", "reason"},
	)
	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Network generation run duration in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	registry.MustRegister(species, reactions, iterations, applications, rejected, runDuration)

	return &Metrics{
		registry:     registry,
		Species:      species,
		Reactions:    reactions,
		Iterations:   iterations,
		Applications: applications,
		Rejected:     rejected,
		RunDuration:  runDuration,
	}
}

// Registry returns the registry holding the collectors, for exposition.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// The helpers below accept a nil receiver so the generator can call them
// unconditionally.

func (m *Metrics) setSize(species, reactions int) {
	if m == nil {
		return
	}
	m.Species.Set(float64(species))
	m.Reactions.Set(float64(reactions))
}

func (m *Metrics) iteration() {
	if m != nil {
		m.Iterations.Inc()
	}
}

func (m *Metrics) applied(rule string) {
	if m != nil {
		m.Applications.WithLabelValues(rule).Inc()
	}
}

func (m *Metrics) rejected(rule, reason string) {
	if m != nil {
		m.Rejected.WithLabelValues(rule, reason).Inc()
	}
}

func (m *Metrics) observeRun(seconds float64) {
	if m != nil {
		m.RunDuration.Observe(seconds)
	}
}
