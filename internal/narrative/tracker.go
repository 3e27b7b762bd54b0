// Package narrative implements fringe-vs-mainstream narrative tracking:
// regex matching for mainstream trend narratives, substring matching for
// fringe narratives, source-provenance classification, momentum against a
// rolling window, and fringe-to-mainstream crossover detection.
package narrative

import (
	"sort"
	"sync"

	"github.com/abelbrown/vigil/internal/feeds"
	"github.com/abelbrown/vigil/internal/logging"
	"github.com/abelbrown/vigil/internal/match"
	"github.com/abelbrown/vigil/internal/patterns"
)

const (
	// MinTrendingMentions is the floor for reporting a mainstream narrative.
	MinTrendingMentions = 2

	momentumSeries = 10 // Observed counts kept per narrative

	maxSources   = 5
	maxHeadlines = 3

	viralFloor     = 5
	spreadingFloor = 3
)

// Tracker is the narrative tracker. Momentum history is owned state, not a
// package singleton, so per-test and per-tenant isolation is a constructor
// call away.
type Tracker struct {
	mu       sync.Mutex
	momentum map[string][]int // narrativeID -> last momentumSeries counts
}

// NewTracker creates a tracker with empty momentum history.
func NewTracker() *Tracker {
	return &Tracker{momentum: make(map[string][]int)}
}

// ClearHistory fully resets momentum history. The next call behaves as a
// first-ever invocation.
func (t *Tracker) ClearHistory() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.momentum = make(map[string][]int)
}

// AnalyzeNarratives runs the mainstream and fringe passes over the batch.
// Returns nil on empty input — the no-input sentinel, not an error.
func (t *Tracker) AnalyzeNarratives(items []feeds.Item) *Results {
	if len(items) == 0 {
		return nil
	}

	results := &Results{}
	t.mainstreamPass(items, results)
	t.fringePass(items, results)

	sort.Slice(results.TrendingNarratives, func(i, j int) bool {
		return results.TrendingNarratives[i].Count > results.TrendingNarratives[j].Count
	})
	sort.Slice(results.EmergingFringe, func(i, j int) bool {
		return results.EmergingFringe[i].Count > results.EmergingFringe[j].Count
	})
	sort.Slice(results.FringeToMainstream, func(i, j int) bool {
		return results.FringeToMainstream[i].CrossoverLevel > results.FringeToMainstream[j].CrossoverLevel
	})
	sort.Slice(results.NarrativeWatch, func(i, j int) bool {
		return results.NarrativeWatch[i].Count > results.NarrativeWatch[j].Count
	})
	sort.Slice(results.DisinfoSignals, func(i, j int) bool {
		return results.DisinfoSignals[i].Count > results.DisinfoSignals[j].Count
	})

	logging.Debug("Narrative: analysis complete",
		"items", len(items),
		"trending", len(results.TrendingNarratives),
		"fringe", len(results.EmergingFringe),
		"crossover", len(results.FringeToMainstream),
		"watch", len(results.NarrativeWatch),
		"disinfo", len(results.DisinfoSignals))

	return results
}

// mainstreamPass matches each mainstream narrative against title + " " +
// description so a pattern can span the field boundary.
func (t *Tracker) mainstreamPass(items []feeds.Item, results *Results) {
	for i := range patterns.MainstreamNarratives {
		n := &patterns.MainstreamNarratives[i]

		var matched []feeds.Item
		for _, item := range items {
			if item.Title == "" {
				continue
			}
			text := item.Title + " " + item.Description
			if match.Any(n.Patterns, text) {
				matched = append(matched, item)
			}
		}
		if len(matched) < MinTrendingMentions {
			continue
		}

		results.TrendingNarratives = append(results.TrendingNarratives, TrendingNarrative{
			ID:        n.ID,
			Name:      n.Name,
			Category:  n.Category,
			Region:    n.Region,
			Count:     len(matched),
			Momentum:  t.observeMomentum(n.ID, len(matched)),
			Sentiment: sentiment(matched),
			Sources:   collectSources(matched),
			Headlines: collectHeadlines(matched),
		})
	}
}

// observeMomentum appends the current count to the narrative's series and
// classifies it against the mean of the prior window. Fewer than 2 prior
// points always reads as stable.
func (t *Tracker) observeMomentum(id string, count int) Trend {
	t.mu.Lock()
	defer t.mu.Unlock()

	prior := t.momentum[id]
	series := append(prior, count)
	if len(series) > momentumSeries {
		series = series[len(series)-momentumSeries:]
	}
	t.momentum[id] = series

	if len(prior) < 2 {
		return TrendStable
	}
	var sum float64
	for _, c := range prior {
		sum += float64(c)
	}
	mean := sum / float64(len(prior))
	switch {
	case float64(count) > 1.2*mean:
		return TrendRising
	case float64(count) < 0.8*mean:
		return TrendFalling
	default:
		return TrendStable
	}
}

// sentiment counts positive vs negative keyword hits over matched headlines.
// Majority wins; ties are neutral.
func sentiment(matched []feeds.Item) Sentiment {
	pos, neg := 0, 0
	for _, item := range matched {
		text := item.Title + " " + item.Description
		for _, m := range patterns.PositiveSentiment {
			if m.Matches(text) {
				pos++
			}
		}
		for _, m := range patterns.NegativeSentiment {
			if m.Matches(text) {
				neg++
			}
		}
	}
	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// fringePass matches each fringe narrative by substring containment and
// buckets it into exactly one result category.
//
// Precedence: crossover beats disinfo beats emerging-fringe beats watch.
// Known-disinformation patterns are always flagged unless they have already
// crossed into mainstream coverage, where crossover is the more actionable
// signal.
func (t *Tracker) fringePass(items []feeds.Item, results *Results) {
	for i := range patterns.FringeNarratives {
		n := &patterns.FringeNarratives[i]

		var matched []feeds.Item
		mainstreamCount, fringeCount, altCount := 0, 0, 0
		for _, item := range items {
			if item.Title == "" {
				continue
			}
			text := item.Title + " " + item.Description
			if !match.Any(n.Keywords, text) {
				continue
			}
			matched = append(matched, item)
			switch feeds.Classify(item.SourceName) {
			case feeds.ClassMainstream:
				mainstreamCount++
			case feeds.ClassFringe:
				fringeCount++
			case feeds.ClassAlternative:
				altCount++
			}
		}
		if len(matched) == 0 {
			continue
		}

		sources := collectSources(matched)
		headlines := collectHeadlines(matched)

		switch {
		case mainstreamCount >= 1 && fringeCount >= 1:
			results.FringeToMainstream = append(results.FringeToMainstream, CrossoverSignal{
				ID:              n.ID,
				Category:        n.Category,
				Severity:        n.Severity,
				Count:           len(matched),
				MainstreamCount: mainstreamCount,
				FringeCount:     fringeCount,
				CrossoverLevel:  float64(mainstreamCount) / float64(len(matched)),
				Sources:         sources,
				Headlines:       headlines,
			})
		case n.Severity == patterns.SeverityDisinfo:
			results.DisinfoSignals = append(results.DisinfoSignals, DisinfoSignal{
				ID:        n.ID,
				Category:  n.Category,
				Count:     len(matched),
				Sources:   sources,
				Headlines: headlines,
			})
		case fringeCount >= 1 || altCount >= 1:
			results.EmergingFringe = append(results.EmergingFringe, FringeSignal{
				ID:        n.ID,
				Category:  n.Category,
				Severity:  n.Severity,
				Count:     len(matched),
				Status:    fringeStatus(len(matched)),
				Sources:   sources,
				Headlines: headlines,
			})
		default:
			results.NarrativeWatch = append(results.NarrativeWatch, WatchSignal{
				ID:        n.ID,
				Category:  n.Category,
				Severity:  n.Severity,
				Count:     len(matched),
				Sources:   sources,
				Headlines: headlines,
			})
		}
	}
}

func fringeStatus(count int) Status {
	switch {
	case count >= viralFloor:
		return StatusViral
	case count >= spreadingFloor:
		return StatusSpreading
	default:
		return StatusEmerging
	}
}

// collectSources returns up to maxSources distinct source names, in first-
// seen order.
func collectSources(matched []feeds.Item) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range matched {
		if seen[item.SourceName] {
			continue
		}
		seen[item.SourceName] = true
		out = append(out, item.SourceName)
		if len(out) == maxSources {
			break
		}
	}
	return out
}

// collectHeadlines returns up to maxHeadlines sampled items, first seen.
func collectHeadlines(matched []feeds.Item) []Headline {
	var out []Headline
	for _, item := range matched {
		out = append(out, Headline{Title: item.Title, Link: item.Link, Source: item.SourceName})
		if len(out) == maxHeadlines {
			break
		}
	}
	return out
}
