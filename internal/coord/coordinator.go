// Package coord provides background fetch coordination for Vigil.
//
// The coordinator owns the real concurrency in the system: a bounded fetch
// pool over all subscribed feeds, breaker and health gating before any
// network I/O, strictly sequential market polling, and the generation token
// that lets a new refresh cycle abandon stale in-flight work without
// corrupting state already written by completed fetches.
package coord

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/vigil/internal/alert"
	"github.com/abelbrown/vigil/internal/config"
	"github.com/abelbrown/vigil/internal/correlation"
	"github.com/abelbrown/vigil/internal/feeds"
	"github.com/abelbrown/vigil/internal/logging"
	"github.com/abelbrown/vigil/internal/narrative"
	"github.com/abelbrown/vigil/internal/resilience"
)

// fetcher interface for dependency injection (testing).
type fetcher interface {
	Fetch(ctx context.Context, src feeds.RSSFeedConfig) ([]feeds.Item, error)
}

// marketPoller interface for dependency injection (testing).
type marketPoller interface {
	Name() string
	Poll(ctx context.Context) ([]feeds.Item, error)
}

// itemStore persists fetched items. Optional; nil disables persistence.
type itemStore interface {
	SaveItems(items []feeds.Item) error
}

// Coordinator manages background fetching and analysis.
// Uses context cancellation as the ONLY stop mechanism.
type Coordinator struct {
	cfg      *config.Config
	fetcher  fetcher
	market   marketPoller // optional: nil disables market polling
	store    itemStore    // optional: nil disables item persistence
	sources  []feeds.RSSFeedConfig
	agg      *feeds.Aggregator
	breakers *resilience.BreakerSet
	health   *resilience.HealthRegistry
	cache    *resilience.Cache
	engine   *correlation.Engine
	tracker  *narrative.Tracker
	notifier *alert.Notifier

	// generation is the current load generation. A refresh cycle captures
	// the value at its start; results arriving under an older generation
	// are discarded rather than applied.
	generation atomic.Int64

	events chan alert.Event
	wg     sync.WaitGroup
}

// New creates a Coordinator. market, store, and cache may be nil; a nil
// cache is created internally.
func New(cfg *config.Config, f fetcher, market marketPoller, store itemStore, cache *resilience.Cache,
	sources []feeds.RSSFeedConfig, engine *correlation.Engine, tracker *narrative.Tracker) *Coordinator {

	// Copy sources slice to ensure immutability
	sourcesCopy := make([]feeds.RSSFeedConfig, len(sources))
	copy(sourcesCopy, sources)

	if cache == nil {
		cache = resilience.NewCache(cfg.CacheTTL())
	}

	return &Coordinator{
		cfg:      cfg,
		fetcher:  f,
		market:   market,
		store:    store,
		sources:  sourcesCopy,
		agg:      feeds.NewAggregator(),
		breakers: resilience.NewBreakerSet(cfg.Breaker.FailureThreshold, cfg.BreakerReset()),
		health:   resilience.NewHealthRegistry(cfg.Health.SkipThreshold, cfg.HealthCooldown()),
		cache:    cache,
		engine:   engine,
		tracker:  tracker,
		notifier: alert.NewNotifier(),
		events:   make(chan alert.Event, 256),
	}
}

// Events returns the new-signal event stream. Drained by the consumer;
// events are dropped, not blocked on, when the buffer is full.
func (c *Coordinator) Events() <-chan alert.Event {
	return c.events
}

// Aggregator exposes the merged item stream.
func (c *Coordinator) Aggregator() *feeds.Aggregator {
	return c.agg
}

// Health exposes the feed-health registry.
func (c *Coordinator) Health() *resilience.HealthRegistry {
	return c.health
}

// Cache exposes the response cache, mainly for the fetcher constructor.
func (c *Coordinator) Cache() *resilience.Cache {
	return c.cache
}

// Start begins background fetching. Call with a cancellable context.
// Performs an initial cycle immediately, then one per fetch interval.
func (c *Coordinator) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		c.runCycle(ctx)

		ticker := time.NewTicker(c.cfg.FetchInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.runCycle(ctx)
			}
		}
	}()
}

// Wait blocks until the background goroutine exits.
// Call after canceling the context passed to Start.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Refresh forces a new cycle generation, invalidating in-flight fetches
// from older cycles. The next completed fetch under an old generation is
// discarded; history already written stays.
func (c *Coordinator) Refresh() {
	c.generation.Add(1)
}

// runCycle fetches every eligible source, polls markets, and runs analysis.
func (c *Coordinator) runCycle(ctx context.Context) {
	gen := c.generation.Add(1)
	start := time.Now()

	c.cache.Prune()
	fetched, skipped := c.fetchAll(ctx, gen)
	marketItems := c.pollMarkets(ctx, gen)

	logging.Info("Cycle complete",
		"generation", gen,
		"fetched", fetched,
		"skipped", skipped,
		"market_items", marketItems,
		"total_items", c.agg.ItemCount(),
		"elapsed", time.Since(start))

	c.analyze()
}

// fetchAll fans out over all sources with bounded concurrency. Each fetch
// gets its own timeout so one dead feed cannot stall its whole category.
// Breaker and health checks run before any network I/O.
func (c *Coordinator) fetchAll(ctx context.Context, gen int64) (fetched, skipped int) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Fetch.MaxConcurrent)

	var mu sync.Mutex
	for _, src := range c.sources {
		// O(1) gate checks before attempting I/O.
		if c.health.ShouldSkip(src.Category, src.Name) {
			logging.Debug("Fetch skipped: health cooldown", "source", src.Name)
			skipped++
			continue
		}
		breaker := c.breakers.For(src.Name)
		if !breaker.CanRequest() {
			logging.Debug("Fetch skipped: breaker open", "source", src.Name)
			skipped++
			continue
		}

		src := src
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, c.cfg.FetchTimeout())
			defer cancel()

			items, err := c.fetcher.Fetch(fetchCtx, src)

			// Stale generation: a newer cycle superseded this one.
			// Health and breaker state still update (the fetch really
			// happened); the items are discarded.
			stale := c.generation.Load() != gen

			breakerFor := c.breakers.For(src.Name)
			if err != nil {
				breakerFor.RecordFailure()
			} else {
				breakerFor.RecordSuccess()
			}
			c.health.Update(src.Category, src.Name, err)

			if err != nil {
				logging.Warn("Fetch failed", "source", src.Name, "err", err)
				return nil // One bad feed never fails the cycle
			}
			if stale {
				logging.Debug("Fetch result discarded: stale generation", "source", src.Name)
				return nil
			}

			added := c.agg.MergeItems(items)
			c.persist(items)

			mu.Lock()
			fetched++
			mu.Unlock()
			logging.Debug("Fetch ok", "source", src.Name, "items", len(items), "added", added)
			return nil
		})
	}
	g.Wait()
	return fetched, skipped
}

// pollMarkets runs the market poll for this cycle. The poller itself
// enforces sequential, staggered requests; the coordinator never calls it
// concurrently.
func (c *Coordinator) pollMarkets(ctx context.Context, gen int64) int {
	if c.market == nil || !c.cfg.Market.Enabled {
		return 0
	}

	breaker := c.breakers.For(c.market.Name())
	if !breaker.CanRequest() {
		logging.Debug("Market poll skipped: breaker open")
		return 0
	}

	items, err := c.market.Poll(ctx)
	if err != nil {
		breaker.RecordFailure()
		logging.Warn("Market poll failed", "err", err)
		return 0
	}
	breaker.RecordSuccess()

	if c.generation.Load() != gen {
		return 0
	}
	c.agg.MergeItems(items)
	c.persist(items)
	return len(items)
}

// persist writes items to the store if configured. Persistence failures are
// logged and absorbed; the in-memory stream is the working set.
func (c *Coordinator) persist(items []feeds.Item) {
	if c.store == nil || len(items) == 0 {
		return
	}
	if err := c.store.SaveItems(items); err != nil {
		logging.Warn("Item persistence failed", "err", err)
	}
}

// analyze runs both engines over the recent window and publishes new-signal
// events.
func (c *Coordinator) analyze() {
	cutoff := time.Now().Add(-time.Duration(c.cfg.Analysis.WindowHours) * time.Hour)
	items := c.agg.ItemsSince(cutoff)

	snapshot := alert.Snapshot{
		Correlation: c.engine.AnalyzeCorrelations(items),
		Narrative:   c.tracker.AnalyzeNarratives(items),
	}
	for _, ev := range c.notifier.Observe(snapshot) {
		select {
		case c.events <- ev:
		default:
			// Consumer not keeping up, drop event
			logging.Debug("Alert event dropped (buffer full)", "signal", ev.SignalID)
		}
	}
}
