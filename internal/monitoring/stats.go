package monitoring

import (
	"sync/atomic"

	"credpool/internal/credential"
)

// Stats is the JSON document served at the stats path: a point-in-time
// view of every credential plus the counters also exposed at /metrics, so
// operators without a Prometheus scraper still see rotation health.
type Stats struct {
	Credentials   []credential.Snapshot `json:"credentials"`
	RequestsTotal int64                 `json:"requests_total"`
	UpstreamCalls map[string]int64      `json:"upstream_calls_total"`
	Transitions   map[string]int64      `json:"credential_transitions_total"`
}

// BuildStats snapshots the registry and the in-process counters.
func BuildStats(reg *credential.Registry) Stats {
	aggregate.mu.Lock()
	defer aggregate.mu.Unlock()

	upstreamCalls := make(map[string]int64, len(aggregate.upstreamCalls))
	for k, v := range aggregate.upstreamCalls {
		upstreamCalls[k] = v
	}
	transitions := make(map[string]int64, len(aggregate.transitions))
	for k, v := range aggregate.transitions {
		transitions[k] = v
	}

	return Stats{
		Credentials:   reg.All(),
		RequestsTotal: atomic.LoadInt64(&aggregate.requestsTotal),
		UpstreamCalls: upstreamCalls,
		Transitions:   transitions,
	}
}
