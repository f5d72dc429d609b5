package credential

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrNoCredentialAvailable is returned when the eligible set is empty.
var ErrNoCredentialAvailable = errors.New("no credential available")

// Policy names one of the three selection strategies.
type Policy string

const (
	RoundRobin    Policy = "round_robin"
	Random        Policy = "random"
	LeastInFlight Policy = "least_in_flight"
)

// Selector hands out one credential per call according to its configured
// policy, reading the registry's eligible set atomically each time.
type Selector struct {
	reg      *Registry
	policyMu sync.RWMutex
	policy   Policy
	cursor   int
}

// NewSelector builds a selector over reg using the given policy.
func NewSelector(reg *Registry, policy Policy) *Selector {
	return &Selector{reg: reg, policy: policy}
}

// SetPolicy swaps the active selection strategy, taking effect on the next
// Select call. Safe to call concurrently with Select, e.g. from a config
// hot-reload handler.
func (s *Selector) SetPolicy(policy Policy) {
	s.policyMu.Lock()
	defer s.policyMu.Unlock()
	s.policy = policy
}

func (s *Selector) currentPolicy() Policy {
	s.policyMu.RLock()
	defer s.policyMu.RUnlock()
	return s.policy
}

// Select returns one eligible credential's id, incrementing its in-flight
// counter and total-requests counter as a side effect of the hand-out.
// Selection never blocks; an empty eligible set yields ErrNoCredentialAvailable.
func (s *Selector) Select() (string, error) {
	s.reg.mu.Lock()
	now := time.Now()
	recs := s.reg.orderedLocked()
	eligible := make([]*Record, 0, len(recs))
	for _, r := range recs {
		s.reg.lazyRecoverLocked(r, now)
		if r.Health == Eligible || r.Health == Probing {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) == 0 {
		s.reg.mu.Unlock()
		return "", ErrNoCredentialAvailable
	}

	var chosen *Record
	switch s.currentPolicy() {
	case Random:
		chosen = eligible[rand.Intn(len(eligible))]
	case LeastInFlight:
		chosen = eligible[0]
		for _, r := range eligible[1:] {
			if r.InFlight < chosen.InFlight {
				chosen = r
			}
		}
	default: // RoundRobin
		idx := s.cursor % len(eligible)
		s.cursor++
		chosen = eligible[idx]
	}

	chosen.TotalRequests++
	chosen.LastRequestAt = now
	chosen.InFlight++
	id := chosen.ID
	s.reg.mu.Unlock()
	return id, nil
}
