package credential

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() HealthConfig {
	return HealthConfig{
		FailureThreshold:      3,
		CooldownDuration:      100 * time.Millisecond,
		ProbesRequiredToClose: 3,
	}
}

func TestRoundRobinVisitsEachMemberOncePerCycle(t *testing.T) {
	reg := NewRegistry()
	reg.Ensure("k1")
	reg.Ensure("k2")
	reg.Ensure("k3")
	sel := NewSelector(reg, RoundRobin)

	var got []string
	for i := 0; i < 6; i++ {
		id, err := sel.Select()
		require.NoError(t, err)
		got = append(got, id)
		_, ok := reg.Success(id, testConfig())
		require.True(t, ok)
	}

	assert.Equal(t, []string{"k1", "k2", "k3", "k1", "k2", "k3"}, got)

	for _, id := range []string{"k1", "k2", "k3"} {
		snap, ok := reg.Snapshot(id)
		require.True(t, ok)
		assert.Equal(t, Eligible, snap.Health)
		assert.EqualValues(t, 2, snap.TotalSuccesses)
	}
}

func TestTripAndRecover(t *testing.T) {
	reg := NewRegistry()
	reg.Ensure("kA")
	cfg := testConfig()

	for i := 0; i < 3; i++ {
		h, ok := reg.Failure("kA", cfg)
		require.True(t, ok)
		if i < 2 {
			assert.Equal(t, Eligible, h)
		} else {
			assert.Equal(t, Tripped, h)
		}
	}

	snap, _ := reg.Snapshot("kA")
	assert.Equal(t, Tripped, snap.Health)
	assert.True(t, snap.CooldownUntil.After(time.Now()))

	sel := NewSelector(reg, RoundRobin)
	_, err := sel.Select()
	assert.ErrorIs(t, err, ErrNoCredentialAvailable)

	time.Sleep(cfg.CooldownDuration + 20*time.Millisecond)

	id, err := sel.Select()
	require.NoError(t, err)
	assert.Equal(t, "kA", id)
	snap, _ = reg.Snapshot("kA")
	assert.Equal(t, Probing, snap.Health)

	h, _ := reg.Success("kA", cfg)
	assert.Equal(t, Probing, h)
	h, _ = reg.Success("kA", cfg)
	assert.Equal(t, Probing, h)
	h, _ = reg.Success("kA", cfg)
	assert.Equal(t, Eligible, h)
}

func TestFailoverWithinOneRequestSkipsTrippedCredential(t *testing.T) {
	reg := NewRegistry()
	reg.Ensure("kX")
	reg.Ensure("kY")
	cfg := testConfig()

	for i := 0; i < 3; i++ {
		reg.Failure("kX", cfg)
	}
	snapX, _ := reg.Snapshot("kX")
	require.Equal(t, Tripped, snapX.Health)
	require.Zero(t, snapX.InFlight)

	sel := NewSelector(reg, RoundRobin)
	id, err := sel.Select()
	require.NoError(t, err)
	assert.Equal(t, "kY", id)

	snapX, _ = reg.Snapshot("kX")
	assert.Zero(t, snapX.InFlight, "kX's in-flight counter must never be touched by a selection that skips it")
}

func TestNSuccessesBelowThresholdStaysEligible(t *testing.T) {
	reg := NewRegistry()
	reg.Ensure("k")
	cfg := testConfig()
	for i := 0; i < cfg.FailureThreshold-1; i++ {
		h, _ := reg.Success("k", cfg)
		assert.Equal(t, Eligible, h)
	}
}

func TestProbingFailureReTrips(t *testing.T) {
	reg := NewRegistry()
	reg.Ensure("k")
	cfg := testConfig()
	for i := 0; i < cfg.FailureThreshold; i++ {
		reg.Failure("k", cfg)
	}
	time.Sleep(cfg.CooldownDuration + 20*time.Millisecond)
	sel := NewSelector(reg, RoundRobin)
	_, err := sel.Select()
	require.NoError(t, err)

	snap, _ := reg.Snapshot("k")
	require.Equal(t, Probing, snap.Health)

	h, _ := reg.Failure("k", cfg)
	assert.Equal(t, Tripped, h)
}

func TestTotalRequestsAlwaysCoversCompletedAttempts(t *testing.T) {
	reg := NewRegistry()
	reg.Ensure("k")
	cfg := testConfig()
	sel := NewSelector(reg, RoundRobin)

	id, err := sel.Select()
	require.NoError(t, err)
	reg.Success(id, cfg)

	snap, _ := reg.Snapshot("k")
	assert.GreaterOrEqual(t, snap.TotalRequests, snap.TotalSuccesses+snap.TotalFailures)
}

func TestResetPreservesCumulativeTotals(t *testing.T) {
	reg := NewRegistry()
	reg.Ensure("k")
	cfg := testConfig()
	for i := 0; i < cfg.FailureThreshold; i++ {
		reg.Failure("k", cfg)
	}
	reg.Reset("k")
	snap, _ := reg.Snapshot("k")
	assert.Equal(t, Eligible, snap.Health)
	assert.Zero(t, snap.ConsecutiveFailures)
	assert.EqualValues(t, cfg.FailureThreshold, snap.TotalFailures)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "short", Mask("short"))
	long := "sk-abcdefghijklmnopqrstuvwxyz0123456789"
	masked := Mask(long)
	assert.Equal(t, long[:7]+"•••"+long[len(long)-7:], masked)
}

func TestLeastInFlightBreaksTiesByRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Ensure("first")
	reg.Ensure("second")
	sel := NewSelector(reg, LeastInFlight)
	id, err := sel.Select()
	require.NoError(t, err)
	assert.Equal(t, "first", id)
}
