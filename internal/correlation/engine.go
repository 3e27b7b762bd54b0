// Package correlation implements the topic correlation engine: deterministic
// pattern matching over item titles, rolling hourly and per-minute history,
// and classification into emerging / momentum / cross-source / predictive /
// compound signal buckets.
//
// The engine performs no I/O of its own beyond the injected history KV and
// never returns an error for well-formed input; weak signal is empty lists.
package correlation

import (
	"math"
	"sort"
	"time"

	"github.com/abelbrown/vigil/internal/feeds"
	"github.com/abelbrown/vigil/internal/logging"
	"github.com/abelbrown/vigil/internal/match"
	"github.com/abelbrown/vigil/internal/patterns"
)

const (
	maxHeadlines = 5

	// emergingFloor is the standalone activity threshold. compoundFloor is
	// deliberately lower so combinations can surface before any single
	// topic would be "emerging" on its own. Intentional asymmetry; do not
	// equalize without revisiting the signal design.
	emergingFloor = 3
	compoundFloor = 2

	momentumLookback = 10 // Minutes for the delta comparison
)

// Engine is the correlation engine. Rolling history lives in an explicitly
// owned History rather than package-level state, so tests and multi-tenant
// hosts get isolation by constructing their own Engine.
type Engine struct {
	history   *History
	topics    []patterns.Topic
	compounds []patterns.CompoundPattern
	now       func() time.Time
}

// NewEngine creates an engine persisting hourly history through kv.
// Pass nil for purely in-memory operation.
func NewEngine(kv KV) *Engine {
	return &Engine{
		history:   NewHistory(kv),
		topics:    patterns.Topics,
		compounds: patterns.CompoundPatterns,
		now:       time.Now,
	}
}

// History exposes the engine's history store, mainly for reset hooks.
func (e *Engine) History() *History {
	return e.history
}

// ClearHistory resets the in-memory rolling state (minute window, velocity
// series). After this call the next analysis behaves like a first run for
// velocity purposes.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}

// ClearPersistedHistory drops the persisted hourly buckets.
func (e *Engine) ClearPersistedHistory() {
	e.history.ClearPersisted()
}

// AnalyzeCorrelations runs one analysis pass over the item batch.
// Returns nil on an empty batch — the explicit no-input sentinel, not an
// error. The call mutates rolling history as a side effect; repeated calls
// within the same minute and hour are idempotent for history purposes.
func (e *Engine) AnalyzeCorrelations(items []feeds.Item) *Results {
	if len(items) == 0 {
		return nil
	}
	now := e.now()

	stats := e.tallyTopics(items)

	// Roll history and derive the statistical fields.
	counts := make(map[string]int, len(stats))
	for id, ts := range stats {
		counts[id] = ts.Count
	}
	e.history.RecordMinute(counts, now)
	for id, ts := range stats {
		ts.ZScore = e.history.ObserveHourly(id, ts.Count, now)
		ts.Velocity, ts.Acceleration = e.history.ObserveVelocity(id, now)
	}

	results := &Results{TopicStats: stats}
	for id, ts := range stats {
		topic := e.topicByID(id)
		if topic == nil {
			continue
		}
		if ep, ok := emergingPattern(topic, ts); ok {
			results.EmergingPatterns = append(results.EmergingPatterns, ep)
		}
		delta := ts.Count - e.history.CountAgo(id, momentumLookback, now)
		if ms, ok := momentumSignal(id, ts, delta); ok {
			results.MomentumSignals = append(results.MomentumSignals, ms)
		}
		if cs, ok := crossSourceCorrelation(id, ts); ok {
			results.CrossSourceCorrelations = append(results.CrossSourceCorrelations, cs)
		}
		if ps, ok := predictiveSignal(topic, ts, delta); ok {
			results.PredictiveSignals = append(results.PredictiveSignals, ps)
		}
	}
	results.CompoundSignals = e.compoundSignals(stats)

	sortResults(results)

	logging.Debug("Correlation: analysis complete",
		"items", len(items),
		"topics_active", len(stats),
		"emerging", len(results.EmergingPatterns),
		"momentum", len(results.MomentumSignals),
		"cross_source", len(results.CrossSourceCorrelations),
		"predictive", len(results.PredictiveSignals),
		"compound", len(results.CompoundSignals))

	return results
}

// tallyTopics scans every item title against every topic's pattern set.
// Items without a title are skipped, never errors.
func (e *Engine) tallyTopics(items []feeds.Item) map[string]*TopicStats {
	stats := make(map[string]*TopicStats)
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		for i := range e.topics {
			topic := &e.topics[i]
			if !match.Any(topic.Patterns, item.Title) {
				continue
			}
			ts := stats[topic.ID]
			if ts == nil {
				ts = &TopicStats{Sources: make(map[string]bool)}
				stats[topic.ID] = ts
			}
			ts.Count++
			ts.WeightedCount += feeds.SourceWeight(item.SourceName)
			ts.Sources[item.SourceName] = true
			if len(ts.Headlines) < maxHeadlines {
				ts.Headlines = append(ts.Headlines, Headline{
					Title:  item.Title,
					Link:   item.Link,
					Source: item.SourceName,
				})
			}
		}
	}
	return stats
}

// emergingPattern fires at count >= emergingFloor.
func emergingPattern(topic *patterns.Topic, ts *TopicStats) (EmergingPattern, bool) {
	if ts.Count < emergingFloor {
		return EmergingPattern{}, false
	}
	return EmergingPattern{
		ID:            topic.ID,
		Category:      topic.Category,
		Count:         ts.Count,
		WeightedCount: ts.WeightedCount,
		SourceCount:   len(ts.Sources),
		ZScore:        ts.ZScore,
		Level:         patternLevel(ts.Count, ts.ZScore),
		Headlines:     ts.Headlines,
	}, true
}

// patternLevel classifies an emerging pattern. Monotonic in both count and
// z-score: raising either never lowers the level.
func patternLevel(count int, zScore float64) Level {
	switch {
	case zScore >= 2.5 || count >= 8:
		return LevelHigh
	case zScore >= 1.5 || count >= 5:
		return LevelElevated
	default:
		return LevelEmerging
	}
}

// momentumSignal fires on a short-window count change.
func momentumSignal(id string, ts *TopicStats, delta int) (MomentumSignal, bool) {
	fires := delta >= 2 ||
		(ts.Count >= 3 && delta >= 1) ||
		ts.Velocity > 0.2
	if !fires {
		return MomentumSignal{}, false
	}

	momentum := MomentumStable
	switch {
	case ts.Velocity > 0.5 && ts.Acceleration > 0:
		momentum = MomentumSurging
	case ts.Velocity > 0.2 || ts.Acceleration > 0.1 || delta >= 4:
		momentum = MomentumRising
	}

	return MomentumSignal{
		ID:           id,
		Count:        ts.Count,
		Delta:        delta,
		Velocity:     ts.Velocity,
		Acceleration: ts.Acceleration,
		Momentum:     momentum,
	}, true
}

// crossSourceCorrelation fires at 3+ distinct sources.
func crossSourceCorrelation(id string, ts *TopicStats) (CrossSourceCorrelation, bool) {
	n := len(ts.Sources)
	if n < 3 {
		return CrossSourceCorrelation{}, false
	}
	level := LevelEmerging
	switch {
	case n >= 5:
		level = LevelHigh
	case n >= 4:
		level = LevelElevated
	}
	return CrossSourceCorrelation{
		ID:          id,
		SourceCount: n,
		Sources:     ts.SourceNames(),
		Level:       level,
	}, true
}

// predictiveSignal scores a topic's forward-looking composite and fires at
// score >= 15.
func predictiveSignal(topic *patterns.Topic, ts *TopicStats, delta int) (PredictiveSignal, bool) {
	score := ts.WeightedCount*2 +
		float64(len(ts.Sources))*3 +
		float64(delta)*5 +
		ts.ZScore*3
	if score < 15 {
		return PredictiveSignal{}, false
	}

	confidence := int(math.Round(score * 1.5))
	if confidence > 95 {
		confidence = 95
	}
	level := ConfidenceLow
	switch {
	case confidence >= 70:
		level = ConfidenceHigh
	case confidence >= 50:
		level = ConfidenceMedium
	}

	return PredictiveSignal{
		ID:         topic.ID,
		Score:      score,
		Confidence: confidence,
		Level:      level,
		Prediction: predictionText(topic, ts),
	}, true
}

// predictionText selects the forecast text by topic id / category rules.
func predictionText(topic *patterns.Topic, ts *TopicStats) string {
	switch {
	case topic.ID == "tariffs" && ts.Count >= 4:
		return "Elevated trade-policy coverage; expect market volatility in affected sectors."
	case topic.Category == "conflict":
		return "Conflict coverage accelerating; watch for breaking developments in the next few hours."
	default:
		return "Sustained multi-source attention; topic likely to dominate the next news cycle."
	}
}

// topicByID finds a topic in the engine's table.
func (e *Engine) topicByID(id string) *patterns.Topic {
	for i := range e.topics {
		if e.topics[i].ID == id {
			return &e.topics[i]
		}
	}
	return nil
}

// compoundSignals evaluates each compound pattern against the tally.
// A member topic is "active" at count >= compoundFloor.
func (e *Engine) compoundSignals(stats map[string]*TopicStats) []CompoundSignal {
	var out []CompoundSignal
	for i := range e.compounds {
		cp := &e.compounds[i]

		var active []string
		var weighted float64
		for _, topicID := range cp.Topics {
			ts := stats[topicID]
			if ts == nil || ts.Count < compoundFloor {
				continue
			}
			active = append(active, topicID)
			weighted += ts.WeightedCount
		}
		if len(active) < cp.MinTopics {
			continue
		}

		score := weighted * cp.BoostFactor
		level := LevelElevated
		switch {
		case score >= 30:
			level = LevelCritical
		case score >= 20:
			level = LevelHigh
		}
		out = append(out, CompoundSignal{
			ID:           cp.ID,
			Name:         cp.Name,
			ActiveTopics: active,
			Score:        score,
			Level:        level,
			Prediction:   cp.Prediction,
		})
	}
	return out
}

// sortResults orders every list descending by its natural ranking key.
func sortResults(r *Results) {
	sort.Slice(r.EmergingPatterns, func(i, j int) bool {
		return r.EmergingPatterns[i].WeightedCount > r.EmergingPatterns[j].WeightedCount
	})
	sort.Slice(r.MomentumSignals, func(i, j int) bool {
		a, b := r.MomentumSignals[i], r.MomentumSignals[j]
		if a.Velocity != b.Velocity {
			return a.Velocity > b.Velocity
		}
		return a.Delta > b.Delta
	})
	sort.Slice(r.CrossSourceCorrelations, func(i, j int) bool {
		return r.CrossSourceCorrelations[i].SourceCount > r.CrossSourceCorrelations[j].SourceCount
	})
	sort.Slice(r.PredictiveSignals, func(i, j int) bool {
		return r.PredictiveSignals[i].Score > r.PredictiveSignals[j].Score
	})
	sort.Slice(r.CompoundSignals, func(i, j int) bool {
		return r.CompoundSignals[i].Score > r.CompoundSignals[j].Score
	})
}
