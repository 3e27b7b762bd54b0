package feeds

import (
	"sort"
	"sync"
	"time"
)

// maxItems bounds the in-memory stream. Oldest items are evicted first.
const maxItems = 5000

// Aggregator merges items from all sources into a single deduplicated
// stream. Deduplication is by link: the analysis engines trust that the
// batch they receive contains each story at most once per outlet.
type Aggregator struct {
	mu      sync.RWMutex
	items   []Item
	links   map[string]bool
	filter  *Filter
	blocked int
}

// NewAggregator creates a new aggregator with the default ad filter
func NewAggregator() *Aggregator {
	return &Aggregator{
		links:  make(map[string]bool),
		filter: DefaultFilter(),
	}
}

// MergeItems merges new items into the aggregate, deduplicating by link and
// filtering ads. Returns the number of items actually added.
func (a *Aggregator) MergeItems(newItems []Item) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	added := 0
	for _, item := range newItems {
		if item.Link != "" && a.links[item.Link] {
			continue
		}
		if a.filter != nil && a.filter.ShouldBlock(item) {
			a.blocked++
			continue
		}
		if item.Link != "" {
			a.links[item.Link] = true
		}
		a.items = append(a.items, item)
		added++
	}

	a.evictLocked()
	return added
}

// evictLocked drops the oldest items once the cap is exceeded.
// Caller must hold the write lock.
func (a *Aggregator) evictLocked() {
	if len(a.items) <= maxItems {
		return
	}
	sort.Slice(a.items, func(i, j int) bool {
		return a.items[i].Published.Before(a.items[j].Published)
	})
	evicted := a.items[:len(a.items)-maxItems]
	for _, item := range evicted {
		delete(a.links, item.Link)
	}
	a.items = append([]Item(nil), a.items[len(a.items)-maxItems:]...)
}

// ItemsSince returns a copy of all items published after the cutoff,
// newest first.
func (a *Aggregator) ItemsSince(cutoff time.Time) []Item {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []Item
	for _, item := range a.items {
		if item.Published.After(cutoff) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Published.After(out[j].Published)
	})
	return out
}

// Items returns a copy of all items
func (a *Aggregator) Items() []Item {
	a.mu.RLock()
	defer a.mu.RUnlock()

	items := make([]Item, len(a.items))
	copy(items, a.items)
	return items
}

// ItemCount returns the total number of items held
func (a *Aggregator) ItemCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.items)
}

// BlockedCount returns number of items blocked by the ad filter
func (a *Aggregator) BlockedCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.blocked
}
