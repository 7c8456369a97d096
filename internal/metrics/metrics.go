package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	fetchTotal     *prometheus.CounterVec
	cyclesTotal    prometheus.Counter
	cycleDuration  prometheus.Histogram
	lastPrice      *prometheus.GaugeVec
	lastSuccess    *prometheus.GaugeVec
	sourcesEnabled prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		fetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricelog_fetch_total",
				Help: "Per-source fetch attempts by outcome",
			},
			[]string{"source", "outcome"},
		),

		cyclesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pricelog_cycles_total",
				Help: "Total number of fetch cycles completed",
			},
		),

		cycleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pricelog_cycle_duration_seconds",
				Help:    "Fetch cycle duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
	}

	r.lastPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pricelog_last_price",
			Help: "Last persisted price in USD",
		},
		[]string{"source"},
	)
	r.lastSuccess = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pricelog_last_success_timestamp_seconds",
			Help: "Unix time of the last persisted price",
		},
		[]string{"source"},
	)
	r.sourcesEnabled = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pricelog_sources",
			Help: "Number of registered price sources",
		},
	)

	reg.MustRegister(r.fetchTotal)
	reg.MustRegister(r.cyclesTotal)
	reg.MustRegister(r.cycleDuration)
	reg.MustRegister(r.lastPrice)
	reg.MustRegister(r.lastSuccess)
	reg.MustRegister(r.sourcesEnabled)

	return r
}

// RecordOutcome counts one fetch attempt for a source.
func (r *Registry) RecordOutcome(source, outcome string) {
	r.fetchTotal.WithLabelValues(source, outcome).Inc()
}

// RecordPrice records a persisted price.
func (r *Registry) RecordPrice(source string, price float64, at time.Time) {
	r.lastPrice.WithLabelValues(source).Set(price)
	r.lastSuccess.WithLabelValues(source).Set(float64(at.Unix()))
}

// RecordCycle records a cycle completion.
func (r *Registry) RecordCycle(duration float64) {
	r.cyclesTotal.Inc()
	r.cycleDuration.Observe(duration)
}

// SetSources sets the number of registered sources.
func (r *Registry) SetSources(n int) {
	r.sourcesEnabled.Set(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{Registry: r.Registry})
}
