// Package metrics - Prometheus-метрики API, отдаются на GET /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPRequests - запросы по методу, шаблону пути и статусу
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "academy_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "path", "status"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "academy_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "path"})

// CheckoutsStarted - созданные checkout-сессии по виду покупки
var CheckoutsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "academy_checkouts_started_total",
	Help: "Checkout sessions created, by kind.",
}, []string{"kind"})

// PaymentsReconciled - исходы сверки: source = poll|webhook|sweep, outcome = applied|noop|error
var PaymentsReconciled = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "academy_payments_reconciled_total",
	Help: "Payment reconciliation attempts by source and outcome.",
}, []string{"source", "outcome"})

var AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "academy_auth_events_total",
	Help: "Auth events by type and result.",
}, []string{"event", "result"})

const (
	SourcePoll    = "poll"
	SourceWebhook = "webhook"
	SourceSweep   = "sweep"

	OutcomeApplied = "applied"
	OutcomeNoop    = "noop"
	OutcomeError   = "error"
)

func Handler() http.Handler {
	return promhttp.Handler()
}
