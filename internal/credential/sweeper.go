package credential

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Sweeper periodically applies the TRIPPED→PROBING transition for
// credentials whose cooldown has elapsed, and garbage-collects records
// idle past idleTTL. It is an optimization: the same lazy transition also
// happens inline on selection, so correctness does not depend on the
// sweeper ever running.
type Sweeper struct {
	reg      *Registry
	interval time.Duration
	idleTTL  time.Duration
}

// NewSweeper builds a sweeper over reg with the given tick interval and
// idle-record TTL.
func NewSweeper(reg *Registry, interval, idleTTL time.Duration) *Sweeper {
	return &Sweeper{reg: reg, interval: interval, idleTTL: idleTTL}
}

// Run blocks, ticking every s.interval, until ctx is cancelled. It is
// intended to be launched in its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Sweeper) tick() {
	now := time.Now()
	recovered := s.recoverExpired(now)
	removed := s.reg.GarbageCollect(now, s.idleTTL)
	if recovered > 0 || removed > 0 {
		log.WithFields(log.Fields{
			"recovered": recovered,
			"collected": removed,
		}).Debug("credential sweep completed")
	}
}

// recoverExpired applies the lazy TRIPPED→PROBING transition to every
// record whose cooldown has elapsed, returning how many it touched.
func (s *Sweeper) recoverExpired(now time.Time) int {
	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()
	n := 0
	for _, r := range s.reg.records {
		if r.Health == Tripped && !r.CooldownUntil.IsZero() && !now.Before(r.CooldownUntil) {
			s.reg.lazyRecoverLocked(r, now)
			n++
		}
	}
	return n
}
