// Package monitoring exposes the gateway's Prometheus metrics (A3) and a
// JSON stats snapshot for operators without a scrape target.
package monitoring

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotalVec = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of inbound HTTP requests handled",
		},
		[]string{"route", "status_class"},
	)

	upstreamCallsTotalVec = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_upstream_calls_total",
			Help: "Total number of upstream calls by outcome",
		},
		[]string{"outcome"},
	)

	credentialTransitionsTotalVec = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_credential_transitions_total",
			Help: "Total number of credential health state transitions",
		},
		[]string{"to_state"},
	)

	UpstreamDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gateway_upstream_duration_seconds",
			Help:    "Upstream call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// aggregate mirrors the counter vectors above in a form that's cheap to
// render as JSON for /stats, without reaching into Prometheus internals.
var aggregate = struct {
	mu            sync.Mutex
	requestsTotal int64
	upstreamCalls map[string]int64
	transitions   map[string]int64
}{
	upstreamCalls: make(map[string]int64),
	transitions:   make(map[string]int64),
}

// RecordRequest increments both the Prometheus counter and the JSON
// aggregate for one completed HTTP request.
func RecordRequest(route string, statusCode int) {
	class := StatusClass(statusCode)
	requestsTotalVec.WithLabelValues(route, class).Inc()
	atomic.AddInt64(&aggregate.requestsTotal, 1)
}

// RecordUpstreamCall increments both the Prometheus counter and the JSON
// aggregate for one completed upstream call, keyed by outcome
// ("success", "failure", "timeout", ...).
func RecordUpstreamCall(outcome string) {
	upstreamCallsTotalVec.WithLabelValues(outcome).Inc()
	aggregate.mu.Lock()
	aggregate.upstreamCalls[outcome]++
	aggregate.mu.Unlock()
}

// RecordCredentialTransition increments both the Prometheus counter and
// the JSON aggregate for one credential health transition.
func RecordCredentialTransition(toState string) {
	credentialTransitionsTotalVec.WithLabelValues(toState).Inc()
	aggregate.mu.Lock()
	aggregate.transitions[toState]++
	aggregate.mu.Unlock()
}

// RecordUpstreamDuration observes one upstream call's wall-clock latency,
// from the moment the request is issued to the moment its headers (unary)
// or its status line (streaming) come back.
func RecordUpstreamDuration(d time.Duration) {
	UpstreamDurationSeconds.Observe(d.Seconds())
}

// StatusClass buckets an HTTP status code into the "2xx"/"4xx"/"5xx"
// label shape used by RequestsTotal.
func StatusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
