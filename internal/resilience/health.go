package resilience

import (
	"sync"
	"time"
)

// FeedHealth tracks reliability metrics for one feed.
type FeedHealth struct {
	Category            string
	SourceName          string
	ConsecutiveFailures int
	TotalFetches        int
	TotalFailures       int
	LastError           string
	LastSuccess         time.Time
	LastAttempt         time.Time
	SkippedUntil        time.Time
}

// SuccessRate returns the fraction of fetches that succeeded, or 1.0 for a
// feed that has never been attempted.
func (h *FeedHealth) SuccessRate() float64 {
	if h.TotalFetches == 0 {
		return 1.0
	}
	return float64(h.TotalFetches-h.TotalFailures) / float64(h.TotalFetches)
}

// HealthRegistry tracks per-feed health and gates fetch attempts. Once a
// feed crosses the failure threshold it is skipped for the cooldown window.
// ShouldSkip is an O(1) map lookup, meant to run before any network I/O.
type HealthRegistry struct {
	mu            sync.RWMutex
	feeds         map[string]*FeedHealth
	skipThreshold int
	cooldown      time.Duration

	now func() time.Time
}

// NewHealthRegistry creates an empty registry.
func NewHealthRegistry(skipThreshold int, cooldown time.Duration) *HealthRegistry {
	return &HealthRegistry{
		feeds:         make(map[string]*FeedHealth),
		skipThreshold: skipThreshold,
		cooldown:      cooldown,
		now:           time.Now,
	}
}

func healthKey(category, sourceName string) string {
	return category + "/" + sourceName
}

// Get returns a copy of the feed's health, or a zero record if unseen.
func (r *HealthRegistry) Get(category, sourceName string) FeedHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h, ok := r.feeds[healthKey(category, sourceName)]; ok {
		return *h
	}
	return FeedHealth{Category: category, SourceName: sourceName}
}

// Update records the outcome of a fetch attempt. A failure that pushes the
// feed past the skip threshold starts the cooldown window.
func (r *HealthRegistry) Update(category, sourceName string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := healthKey(category, sourceName)
	h, ok := r.feeds[key]
	if !ok {
		h = &FeedHealth{Category: category, SourceName: sourceName}
		r.feeds[key] = h
	}

	now := r.now()
	h.LastAttempt = now
	h.TotalFetches++

	if err != nil {
		h.ConsecutiveFailures++
		h.TotalFailures++
		h.LastError = err.Error()
		if h.ConsecutiveFailures >= r.skipThreshold {
			h.SkippedUntil = now.Add(r.cooldown)
		}
		return
	}

	h.ConsecutiveFailures = 0
	h.LastError = ""
	h.LastSuccess = now
	h.SkippedUntil = time.Time{}
}

// ShouldSkip reports whether the feed is inside its cooldown window.
// O(1); call before attempting network I/O.
func (r *HealthRegistry) ShouldSkip(category, sourceName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.feeds[healthKey(category, sourceName)]
	if !ok {
		return false
	}
	return r.now().Before(h.SkippedUntil)
}

// All returns a copy of every tracked feed's health.
func (r *HealthRegistry) All() []FeedHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FeedHealth, 0, len(r.feeds))
	for _, h := range r.feeds {
		out = append(out, *h)
	}
	return out
}
