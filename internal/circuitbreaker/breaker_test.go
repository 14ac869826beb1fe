package circuitbreaker

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestBreaker(cooldown time.Duration) *Breaker {
	return New(Config{
		FailThreshold:    3,
		SuccessThreshold: 2,
		Cooldown:         cooldown,
	}, zerolog.Nop())
}

func TestBreaker_StartsClosed(t *testing.T) {
	b := newTestBreaker(time.Second)

	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	b := newTestBreaker(time.Minute)

	b.Record(false)
	b.Record(false)
	assert.Equal(t, StateClosed, b.State(), "two failures should not trip a threshold of three")

	b.Record(false)
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())
}

func TestBreaker_SuccessResetsFailureStreak(t *testing.T) {
	b := newTestBreaker(time.Minute)

	b.Record(false)
	b.Record(false)
	b.Record(true)
	b.Record(false)
	b.Record(false)

	assert.Equal(t, StateClosed, b.State(), "non-consecutive failures should not trip")
}

func TestBreaker_HalfOpenAfterCooldown(t *testing.T) {
	b := newTestBreaker(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		b.Record(false)
	}
	assert.False(t, b.Allow())

	time.Sleep(20 * time.Millisecond)

	assert.True(t, b.Allow(), "cooldown expiry should let a probe through")
	assert.Equal(t, StateHalfOpen, b.State())
}

func TestBreaker_ClosesAfterProbeSuccesses(t *testing.T) {
	b := newTestBreaker(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		b.Record(false)
	}
	time.Sleep(20 * time.Millisecond)
	assert.True(t, b.Allow())

	b.Record(true)
	assert.Equal(t, StateHalfOpen, b.State(), "one success of two should stay half-open")

	b.Record(true)
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreaker_ReopensOnProbeFailure(t *testing.T) {
	b := newTestBreaker(10 * time.Millisecond)

	for i := 0; i < 3; i++ {
		b.Record(false)
	}
	time.Sleep(20 * time.Millisecond)
	assert.True(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.State())

	b.Record(false)
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow(), "fresh cooldown should block immediately")
}

func TestBreaker_Reset(t *testing.T) {
	b := newTestBreaker(time.Minute)

	for i := 0; i < 3; i++ {
		b.Record(false)
	}
	assert.Equal(t, StateOpen, b.State())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreaker_Defaults(t *testing.T) {
	b := New(Config{}, zerolog.Nop())

	for i := 0; i < 4; i++ {
		b.Record(false)
	}
	assert.Equal(t, StateClosed, b.State(), "default threshold is five")

	b.Record(false)
	assert.Equal(t, StateOpen, b.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "HALF_OPEN", StateHalfOpen.String())
	assert.Equal(t, "UNKNOWN", State(99).String())
}
