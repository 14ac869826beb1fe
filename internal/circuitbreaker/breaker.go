package circuitbreaker

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

type Config struct {
	// FailThreshold is the number of consecutive failures that trips the
	// breaker open.
	FailThreshold int
	// SuccessThreshold is the number of consecutive probe successes that
	// closes it again.
	SuccessThreshold int
	// Cooldown is how long the breaker stays open before letting a probe
	// through.
	Cooldown time.Duration
}

// Breaker fails fast once the upstream looks broken. CLOSED passes calls
// through and counts consecutive failures; FailThreshold of them trips the
// breaker OPEN; after Cooldown a probe call is let through HALF_OPEN, where
// SuccessThreshold consecutive successes close the circuit and any failure
// reopens it.
type Breaker struct {
	config Config
	logger zerolog.Logger

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
}

func New(config Config, logger zerolog.Logger) *Breaker {
	if config.FailThreshold <= 0 {
		config.FailThreshold = 5
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 1
	}
	if config.Cooldown <= 0 {
		config.Cooldown = 30 * time.Second
	}
	return &Breaker{config: config, logger: logger}
}

// Allow reports whether a call may proceed right now.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if time.Since(b.openedAt) >= b.config.Cooldown {
			b.transition(StateHalfOpen)
			return true
		}
		return false
	}
	return false
}

// Record feeds a call outcome back into the state machine.
func (b *Breaker) Record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if success {
		b.recordSuccess()
	} else {
		b.recordFailure()
	}
}

func (b *Breaker) recordSuccess() {
	switch b.state {
	case StateClosed:
		b.failures = 0
	case StateHalfOpen:
		b.successes++
		if b.successes >= b.config.SuccessThreshold {
			b.failures = 0
			b.successes = 0
			b.transition(StateClosed)
		}
	}
}

func (b *Breaker) recordFailure() {
	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.config.FailThreshold {
			b.openedAt = time.Now()
			b.transition(StateOpen)
		}
	case StateHalfOpen:
		b.successes = 0
		b.openedAt = time.Now()
		b.transition(StateOpen)
	case StateOpen:
		b.openedAt = time.Now()
	}
}

func (b *Breaker) transition(next State) {
	if b.state == next {
		return
	}
	evt := b.logger.Info()
	if next == StateOpen {
		evt = b.logger.Warn()
	}
	evt.Str("from", b.state.String()).
		Str("to", next.String()).
		Msg("circuit breaker state change")
	b.state = next
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset forces the breaker back to CLOSED and clears its counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.successes = 0
	b.transition(StateClosed)
}
