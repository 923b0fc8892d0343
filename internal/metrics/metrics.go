package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "yamdb"

// Registry holds every yamdb collector plus the Go and process collectors.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Auth flow
var (
	// ConfirmationCodesIssued counts codes mailed by /auth/email/.
	ConfirmationCodesIssued = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "confirmation_codes_issued_total",
			Help:      "Total number of confirmation codes issued",
		},
	)

	// TokenExchanges counts /auth/token/ calls by outcome: issued, mismatch, unknown_email.
	TokenExchanges = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_exchanges_total",
			Help:      "Total number of confirmation code exchanges by result",
		},
		[]string{"result"},
	)

	// ThrottledRequests counts requests rejected by the rate limiter.
	ThrottledRequests = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "throttled_requests_total",
			Help:      "Total number of requests rejected by rate limiting",
		},
		[]string{"scope"},
	)
)

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
