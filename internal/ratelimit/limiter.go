package ratelimit

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Scope enforces a weighted request budget that refills continuously at
// capacity-per-window speed. Heavy calls consume more of the budget than
// light ones, and callers block once the budget is drained.
type Scope struct {
	limiter  *rate.Limiter
	capacity int
	window   time.Duration
	metrics  *Metrics
}

// Metrics tracks statistics about scope usage.
type Metrics struct {
	totalAcquires  atomic.Int64
	grantedWeight  atomic.Int64
	deniedAcquires atomic.Int64
}

// NewScope creates a Scope granting at most capacity weight units per
// window. The budget starts full, so initial calls up to capacity do not
// block.
func NewScope(capacity int, window time.Duration) *Scope {
	refill := float64(capacity) / window.Seconds()
	return &Scope{
		limiter:  rate.NewLimiter(rate.Limit(refill), capacity),
		capacity: capacity,
		window:   window,
		metrics:  &Metrics{},
	}
}

// Acquire blocks until weight units of budget are available or the context
// is cancelled. A weight above the scope's capacity can never be granted
// and fails immediately.
func (s *Scope) Acquire(ctx context.Context, weight int) error {
	s.metrics.totalAcquires.Add(1)
	if weight > s.capacity {
		s.metrics.deniedAcquires.Add(1)
		return fmt.Errorf("weight %d exceeds scope capacity %d", weight, s.capacity)
	}
	if err := s.limiter.WaitN(ctx, weight); err != nil {
		s.metrics.deniedAcquires.Add(1)
		return err
	}
	s.metrics.grantedWeight.Add(int64(weight))
	return nil
}

// Allow reports whether weight units are available right now, consuming
// them when they are.
func (s *Scope) Allow(weight int) bool {
	s.metrics.totalAcquires.Add(1)
	if weight > s.capacity {
		s.metrics.deniedAcquires.Add(1)
		return false
	}
	allowed := s.limiter.AllowN(time.Now(), weight)
	if allowed {
		s.metrics.grantedWeight.Add(int64(weight))
	} else {
		s.metrics.deniedAcquires.Add(1)
	}
	return allowed
}

// Capacity returns the weight budget available per window.
func (s *Scope) Capacity() int {
	return s.capacity
}

// Window returns the refill window.
func (s *Scope) Window() time.Duration {
	return s.window
}

// Metrics returns a snapshot of the current scope statistics.
func (s *Scope) Metrics() MetricsSnapshot {
	return MetricsSnapshot{
		TotalAcquires:  s.metrics.totalAcquires.Load(),
		GrantedWeight:  s.metrics.grantedWeight.Load(),
		DeniedAcquires: s.metrics.deniedAcquires.Load(),
	}
}

// MetricsSnapshot is a point-in-time capture of scope statistics.
type MetricsSnapshot struct {
	// TotalAcquires is the total number of budget requests made.
	TotalAcquires int64
	// GrantedWeight is the cumulative weight handed out.
	GrantedWeight int64
	// DeniedAcquires is the number of requests denied or cancelled.
	DeniedAcquires int64
}
