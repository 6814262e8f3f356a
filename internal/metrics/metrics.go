// Package metrics exposes the Prometheus collectors of the API.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	reservationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservations_total",
			Help: "Reservation attempts by outcome.",
		},
		[]string{"outcome"},
	)

	centersRegisteredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "centers_registered_total",
		Help: "Centers registered through the public API.",
	})
)

var registerOnce sync.Once

// Init registers every collector in the default registry.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight,
			httpRequestsTotal,
			httpRequestDuration,
			reservationsTotal,
			centersRegisteredTotal,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RequestStarted marks one more request in flight.
func RequestStarted() {
	httpInFlight.Inc()
}

// RequestFinished records a served request. route is the matched route
// pattern, never the raw path, to keep label cardinality bounded.
func RequestFinished(method, route, status string, seconds float64) {
	httpInFlight.Dec()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
}

// Reservation outcomes.
const (
	OutcomeCreated  = "created"
	OutcomeFull     = "full"
	OutcomeRejected = "rejected"
)

// ReservationAttempt counts one reservation attempt.
func ReservationAttempt(outcome string) {
	reservationsTotal.WithLabelValues(outcome).Inc()
}

// CenterRegistered counts one successful center registration.
func CenterRegistered() {
	centersRegisteredTotal.Inc()
}
