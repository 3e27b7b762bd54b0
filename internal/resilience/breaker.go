// Package resilience provides the primitives that keep the fetch layer
// alive against unreliable upstream feeds: per-feed circuit breakers, a
// feed-health registry with cooldown/skip policy, and a TTL response cache.
package resilience

import (
	"sync"
	"time"
)

// BreakerState is the circuit breaker state machine position.
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// CircuitBreaker short-circuits requests to a repeatedly failing upstream.
// After threshold consecutive failures the breaker opens; once the reset
// timeout elapses a single half-open probe is allowed through.
type CircuitBreaker struct {
	mu           sync.Mutex
	name         string
	threshold    int
	resetTimeout time.Duration

	failures    int
	lastFailure time.Time
	state       BreakerState

	now func() time.Time
}

// NewCircuitBreaker creates a closed breaker for the named upstream.
func NewCircuitBreaker(name string, threshold int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:         name,
		threshold:    threshold,
		resetTimeout: resetTimeout,
		state:        BreakerClosed,
		now:          time.Now,
	}
}

// CanRequest reports whether a request may be attempted. Never blocks.
// An open breaker transitions to half-open once the cooldown expires,
// admitting one probe.
func (b *CircuitBreaker) CanRequest() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen {
		if b.now().Sub(b.lastFailure) >= b.resetTimeout {
			b.state = BreakerHalfOpen
			return true
		}
		return false
	}
	return true
}

// RecordSuccess closes the breaker and resets the failure count.
func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.state = BreakerClosed
}

// RecordFailure counts a failure and opens the breaker at the threshold.
// A half-open probe failure reopens immediately.
func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailure = b.now()
	if b.state == BreakerHalfOpen || b.failures >= b.threshold {
		b.state = BreakerOpen
	}
}

// State returns the current breaker state.
func (b *CircuitBreaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Name returns the upstream this breaker guards.
func (b *CircuitBreaker) Name() string {
	return b.name
}

// BreakerSet lazily manages one breaker per upstream name.
type BreakerSet struct {
	mu           sync.Mutex
	breakers     map[string]*CircuitBreaker
	threshold    int
	resetTimeout time.Duration
}

// NewBreakerSet creates an empty set with shared thresholds.
func NewBreakerSet(threshold int, resetTimeout time.Duration) *BreakerSet {
	return &BreakerSet{
		breakers:     make(map[string]*CircuitBreaker),
		threshold:    threshold,
		resetTimeout: resetTimeout,
	}
}

// For returns the breaker for the named upstream, creating it if needed.
func (s *BreakerSet) For(name string) *CircuitBreaker {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.breakers[name]
	if !ok {
		b = NewCircuitBreaker(name, s.threshold, s.resetTimeout)
		s.breakers[name] = b
	}
	return b
}
