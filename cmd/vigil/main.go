// Vigil - headless news signal watcher.
//
// Architecture overview:
//   internal/fetch, internal/market   - upstream retrieval
//   internal/coord                    - bounded fetch pool, breakers, cycles
//   internal/correlation, narrative   - the analysis engines
//   internal/alert                    - snapshot diffing into events
//   internal/store                    - SQLite items + history persistence
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/abelbrown/vigil/internal/config"
	"github.com/abelbrown/vigil/internal/coord"
	"github.com/abelbrown/vigil/internal/correlation"
	"github.com/abelbrown/vigil/internal/feeds"
	"github.com/abelbrown/vigil/internal/fetch"
	"github.com/abelbrown/vigil/internal/logging"
	"github.com/abelbrown/vigil/internal/market"
	"github.com/abelbrown/vigil/internal/narrative"
	"github.com/abelbrown/vigil/internal/resilience"
	"github.com/abelbrown/vigil/internal/store"
)

func main() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}

	logging.Info("Vigil starting",
		"sources", len(feeds.DefaultRSSFeeds),
		"max_concurrent", cfg.Fetch.MaxConcurrent,
		"interval", cfg.FetchInterval())

	// Ensure data directory exists
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fatal("Failed to get home directory: %v", err)
	}
	dataDir := filepath.Join(homeDir, ".vigil")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		fatal("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "vigil.db")
	st, err := store.Open(dbPath)
	if err != nil {
		fatal("Failed to open store: %v", err)
	}
	defer st.Close()
	logging.Info("Store initialized", "path", dbPath)

	// The store doubles as the hourly-history KV backend, so z-scores
	// survive restarts.
	engine := correlation.NewEngine(st)
	tracker := narrative.NewTracker()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The fetcher and coordinator share one response cache.
	cache := resilience.NewCache(cfg.CacheTTL())
	fetcher := fetch.NewFetcher(cfg.FetchTimeout(), cache)
	var poller *market.Poller
	if cfg.Market.Enabled {
		poller = market.NewPoller(cfg.MarketStagger(), cfg.Market.Limit)
	}
	c := coord.New(cfg, fetcher, poller, st, cache, feeds.DefaultRSSFeeds, engine, tracker)
	c.Start(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case ev := <-c.Events():
			fmt.Printf("[%s] %-12s %-24s level=%-10s %s\n",
				ev.At.Format("15:04:05"), ev.Category, ev.SignalID, ev.Level, ev.Summary)
		case sig := <-sigCh:
			logging.Info("Signal received, shutting down", "signal", sig)
			cancel()
			c.Wait()
			return
		}
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	logging.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
