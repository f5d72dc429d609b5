// Package credential implements the gateway's credential registry, health
// state machine, selection policies, and recovery sweeper.
package credential

import "time"

// Health is one of the three states a credential can occupy.
type Health string

const (
	Eligible Health = "ELIGIBLE"
	Tripped  Health = "TRIPPED"
	Probing  Health = "PROBING"
)

// Record is the credential registry's view of a single credential. It is
// mutated only through the transition functions in state_machine.go; every
// other package reads a Snapshot instead of a live Record.
type Record struct {
	ID string

	Health              Health
	ConsecutiveFailures int
	TotalRequests       int64
	TotalSuccesses      int64
	TotalFailures       int64

	LastRequestAt time.Time
	LastSuccessAt time.Time
	LastFailureAt time.Time

	CooldownUntil time.Time

	ProbeSuccessesInWindow int

	InFlight int

	registeredAt time.Time
	order        int
}

// Snapshot is a copy-out of a Record safe to read without holding the
// registry lock. Fields mirror Record; CooldownRemaining is derived for
// callers that just want "how much longer".
type Snapshot struct {
	ID                  string
	MaskedID            string
	Health              Health
	ConsecutiveFailures int
	TotalRequests       int64
	TotalSuccesses      int64
	TotalFailures       int64
	LastRequestAt       time.Time
	LastSuccessAt       time.Time
	LastFailureAt       time.Time
	CooldownUntil       time.Time
	CooldownRemaining   time.Duration
	InFlight            int
}

func (r *Record) snapshot(now time.Time) Snapshot {
	remaining := time.Duration(0)
	if r.Health == Tripped && r.CooldownUntil.After(now) {
		remaining = r.CooldownUntil.Sub(now)
	}
	return Snapshot{
		ID:                  r.ID,
		MaskedID:            Mask(r.ID),
		Health:              r.Health,
		ConsecutiveFailures: r.ConsecutiveFailures,
		TotalRequests:       r.TotalRequests,
		TotalSuccesses:      r.TotalSuccesses,
		TotalFailures:       r.TotalFailures,
		LastRequestAt:       r.LastRequestAt,
		LastSuccessAt:       r.LastSuccessAt,
		LastFailureAt:       r.LastFailureAt,
		CooldownUntil:       r.CooldownUntil,
		CooldownRemaining:   remaining,
		InFlight:            r.InFlight,
	}
}

// Mask keeps the leading and trailing 7 characters of a credential and
// replaces the rest with bullets. It is the only form a credential may
// take once it reaches a log line or an API response.
func Mask(id string) string {
	const keep = 7
	if len(id) <= keep*2 {
		return id
	}
	return id[:keep] + "•••" + id[len(id)-keep:]
}
