package resilience

import (
	"testing"
	"time"
)

func TestBreakerOpensAtThreshold(t *testing.T) {
	b := NewCircuitBreaker("feed", 2, 5*time.Minute)

	if !b.CanRequest() {
		t.Fatal("new breaker should admit requests")
	}
	b.RecordFailure()
	if b.State() != BreakerClosed || !b.CanRequest() {
		t.Error("one failure below threshold should keep the breaker closed")
	}
	b.RecordFailure()
	if b.State() != BreakerOpen {
		t.Error("breaker should open at the failure threshold")
	}
	if b.CanRequest() {
		t.Error("open breaker should reject requests before cooldown")
	}
}

func TestBreakerHalfOpenProbe(t *testing.T) {
	clock := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	b := NewCircuitBreaker("feed", 2, 5*time.Minute)
	b.now = func() time.Time { return clock }

	b.RecordFailure()
	b.RecordFailure()
	if b.CanRequest() {
		t.Fatal("breaker should be open")
	}

	clock = clock.Add(5 * time.Minute)
	if !b.CanRequest() {
		t.Fatal("cooldown elapsed: one probe should be admitted")
	}
	if b.State() != BreakerHalfOpen {
		t.Errorf("state = %s, want half-open", b.State())
	}

	// Failed probe reopens immediately, no threshold counting.
	b.RecordFailure()
	if b.State() != BreakerOpen {
		t.Error("failed half-open probe should reopen the breaker")
	}
	if b.CanRequest() {
		t.Error("reopened breaker should reject until the next cooldown")
	}
}

func TestBreakerSuccessfulProbeCloses(t *testing.T) {
	clock := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	b := NewCircuitBreaker("feed", 2, 5*time.Minute)
	b.now = func() time.Time { return clock }

	b.RecordFailure()
	b.RecordFailure()
	clock = clock.Add(6 * time.Minute)
	if !b.CanRequest() {
		t.Fatal("probe should be admitted")
	}
	b.RecordSuccess()
	if b.State() != BreakerClosed {
		t.Errorf("state = %s, want closed after successful probe", b.State())
	}
	// Failure count was reset: one new failure does not reopen.
	b.RecordFailure()
	if b.State() != BreakerClosed {
		t.Error("single failure after reset should not reopen")
	}
}

func TestBreakerSuccessResetsCount(t *testing.T) {
	b := NewCircuitBreaker("feed", 2, time.Minute)
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	if b.State() != BreakerClosed {
		t.Error("interleaved successes should keep the breaker closed")
	}
}

func TestBreakerSet(t *testing.T) {
	s := NewBreakerSet(2, time.Minute)
	a := s.For("feed-a")
	if got := s.For("feed-a"); got != a {
		t.Error("For should return the same breaker per name")
	}
	b := s.For("feed-b")
	a.RecordFailure()
	a.RecordFailure()
	if a.State() != BreakerOpen {
		t.Error("feed-a breaker should be open")
	}
	if b.State() != BreakerClosed {
		t.Error("feed-b breaker must be independent of feed-a")
	}
	if a.Name() != "feed-a" {
		t.Errorf("name = %q", a.Name())
	}
}

func TestBreakerStateString(t *testing.T) {
	cases := map[BreakerState]string{
		BreakerClosed:   "closed",
		BreakerOpen:     "open",
		BreakerHalfOpen: "half-open",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
