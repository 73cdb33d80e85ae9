package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PortfoliosRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolios_rendered_total",
			Help: "Number of portfolio renders by variant and theme",
		},
		[]string{"variant", "theme"},
	)

	RenderBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_render_bytes",
			Help:    "Size of rendered portfolio HTML in bytes",
			Buckets: []float64{1000, 5000, 10000, 50000, 100000, 1000000, 5000000},
		},
		[]string{"variant"},
	)

	Deploys = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_deploys_total",
			Help: "Simulated deployments by outcome",
		},
		[]string{"status"},
	)

	WizardSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_step_transitions_total",
			Help: "Wizard step changes by target step and result",
		},
		[]string{"step", "result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "code"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "code"},
	)

	HTTPInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)
)
