package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	LookupsTotal     *prometheus.CounterVec
	ExportsTotal     *prometheus.CounterVec
	TrustScores      prometheus.Histogram
	UpstreamFailures *prometheus.CounterVec
}

// New creates all Prometheus metrics registered on the default registry
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all Prometheus metrics registered on the given registerer
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "veriscope_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "veriscope_http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
			},
			[]string{"method", "path"},
		),
		LookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "veriscope_lookups_total",
				Help: "Total number of verification lookups by domain and outcome",
			},
			[]string{"domain", "outcome"},
		),
		ExportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "veriscope_exports_total",
				Help: "Total number of report exports by format",
			},
			[]string{"format"},
		),
		TrustScores: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "veriscope_trust_score",
			Help:    "Distribution of computed trust scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
		UpstreamFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "veriscope_upstream_failures_total",
				Help: "Total number of upstream registry call failures",
			},
			[]string{"domain"},
		),
	}
}

// ObserveLookup records one verification lookup
func (m *Metrics) ObserveLookup(domain, outcome string) {
	m.LookupsTotal.WithLabelValues(domain, outcome).Inc()
}

// ObserveExport records one report export
func (m *Metrics) ObserveExport(format string) {
	m.ExportsTotal.WithLabelValues(format).Inc()
}

// ObserveTrustScore records one computed trust score
func (m *Metrics) ObserveTrustScore(score int) {
	m.TrustScores.Observe(float64(score))
}

// ObserveUpstreamFailure records one failed upstream registry call
func (m *Metrics) ObserveUpstreamFailure(domain string) {
	m.UpstreamFailures.WithLabelValues(domain).Inc()
}
