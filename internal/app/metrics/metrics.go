package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	QuotesTotal        *prometheus.CounterVec
	UnpricedLinesTotal *prometheus.CounterVec
	PDFErrorsTotal     prometheus.Counter

	registry *prometheus.Registry
}

// New registers every collector on registry. A nil registry gets a fresh one.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orcamento_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orcamento_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		QuotesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orcamento_quotes_total",
				Help: "Quotes calculated, by company size and output format",
			},
			[]string{"size", "format"},
		),
		UnpricedLinesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orcamento_unpriced_lines_total",
				Help: "Quote lines priced at zero because no price row matched",
			},
			[]string{"service"},
		),
		PDFErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orcamento_pdf_errors_total",
				Help: "PDF renders that failed",
			},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.QuotesTotal,
		m.UnpricedLinesTotal,
		m.PDFErrorsTotal,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
