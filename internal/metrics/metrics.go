package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordlookup",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wordlookup",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.3, 0.5, 1, 2, 5, 10},
	}, []string{"method", "route"})

	LookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordlookup",
		Name:      "lookups_total",
		Help:      "Total dictionary lookups by outcome (success, not_found, invalid, error).",
	}, []string{"outcome"})

	LookupDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wordlookup",
		Name:      "lookup_duration_seconds",
		Help:      "Dictionary API lookup duration in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	LookupsCancelledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wordlookup",
		Name:      "lookups_cancelled_total",
		Help:      "Lookups cancelled because a newer search superseded them or the controller closed.",
	})

	HistoryWriteErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wordlookup",
		Name:      "history_write_errors_total",
		Help:      "Failed attempts to record a lookup in the history store.",
	})
)

// Register adds all collectors to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		LookupsTotal,
		LookupDuration,
		LookupsCancelledTotal,
		HistoryWriteErrorsTotal,
	)
}
