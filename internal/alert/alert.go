// Package alert diffs consecutive analysis snapshots and emits "new signal"
// events. Signal ids are the static topic/narrative/pattern ids, so a signal
// present in both snapshots is the same condition continuing, not news.
package alert

import (
	"time"

	"github.com/google/uuid"

	"github.com/abelbrown/vigil/internal/correlation"
	"github.com/abelbrown/vigil/internal/logging"
	"github.com/abelbrown/vigil/internal/narrative"
)

// Category names the result list a signal came from.
type Category string

const (
	CategoryEmerging    Category = "emerging"
	CategoryMomentum    Category = "momentum"
	CategoryCrossSource Category = "cross-source"
	CategoryPredictive  Category = "predictive"
	CategoryCompound    Category = "compound"
	CategoryTrending    Category = "trending"
	CategoryFringe      Category = "fringe"
	CategoryCrossover   Category = "crossover"
	CategoryWatch       Category = "watch"
	CategoryDisinfo     Category = "disinfo"
)

// Event is one new-signal notification.
type Event struct {
	EventID  string // Unique per emission
	Category Category
	SignalID string // Stable topic/narrative/pattern id
	Level    string
	Summary  string
	At       time.Time
}

// Snapshot is the combined output of one analysis run. Either field may be
// nil (the engines' empty-input sentinel).
type Snapshot struct {
	Correlation *correlation.Results
	Narrative   *narrative.Results
}

// ids collects the signal ids per category.
func (s Snapshot) ids() map[Category]map[string]bool {
	out := make(map[Category]map[string]bool)
	add := func(cat Category, id string) {
		if out[cat] == nil {
			out[cat] = make(map[string]bool)
		}
		out[cat][id] = true
	}
	if s.Correlation != nil {
		for _, p := range s.Correlation.EmergingPatterns {
			add(CategoryEmerging, p.ID)
		}
		for _, m := range s.Correlation.MomentumSignals {
			add(CategoryMomentum, m.ID)
		}
		for _, c := range s.Correlation.CrossSourceCorrelations {
			add(CategoryCrossSource, c.ID)
		}
		for _, p := range s.Correlation.PredictiveSignals {
			add(CategoryPredictive, p.ID)
		}
		for _, c := range s.Correlation.CompoundSignals {
			add(CategoryCompound, c.ID)
		}
	}
	if s.Narrative != nil {
		for _, n := range s.Narrative.TrendingNarratives {
			add(CategoryTrending, n.ID)
		}
		for _, f := range s.Narrative.EmergingFringe {
			add(CategoryFringe, f.ID)
		}
		for _, c := range s.Narrative.FringeToMainstream {
			add(CategoryCrossover, c.ID)
		}
		for _, w := range s.Narrative.NarrativeWatch {
			add(CategoryWatch, w.ID)
		}
		for _, d := range s.Narrative.DisinfoSignals {
			add(CategoryDisinfo, d.ID)
		}
	}
	return out
}

// Notifier diffs snapshots and remembers the previous one.
type Notifier struct {
	prev Snapshot
	now  func() time.Time
}

// NewNotifier creates a notifier with an empty previous snapshot, so the
// first observation reports everything as new.
func NewNotifier() *Notifier {
	return &Notifier{now: time.Now}
}

// Observe diffs the current snapshot against the previous one and returns
// events for ids that are present now but were not before, per category.
// The current snapshot becomes the new baseline.
func (n *Notifier) Observe(curr Snapshot) []Event {
	events := Diff(n.prev, curr, n.now())
	n.prev = curr
	if len(events) > 0 {
		logging.Info("Alert: new signals", "count", len(events))
	}
	return events
}

// Diff returns events for signal ids present in curr but absent from prev,
// per category. Pure function; Observe wraps it with baseline tracking.
func Diff(prev, curr Snapshot, at time.Time) []Event {
	prevIDs := prev.ids()
	var events []Event

	emit := func(cat Category, id, level, summary string) {
		if prevIDs[cat][id] {
			return
		}
		events = append(events, Event{
			EventID:  uuid.NewString(),
			Category: cat,
			SignalID: id,
			Level:    level,
			Summary:  summary,
			At:       at,
		})
	}

	if curr.Correlation != nil {
		for _, p := range curr.Correlation.EmergingPatterns {
			emit(CategoryEmerging, p.ID, string(p.Level), firstTitle(p.Headlines))
		}
		for _, m := range curr.Correlation.MomentumSignals {
			emit(CategoryMomentum, m.ID, string(m.Momentum), "")
		}
		for _, c := range curr.Correlation.CrossSourceCorrelations {
			emit(CategoryCrossSource, c.ID, string(c.Level), "")
		}
		for _, p := range curr.Correlation.PredictiveSignals {
			emit(CategoryPredictive, p.ID, string(p.Level), p.Prediction)
		}
		for _, c := range curr.Correlation.CompoundSignals {
			emit(CategoryCompound, c.ID, string(c.Level), c.Name)
		}
	}
	if curr.Narrative != nil {
		for _, t := range curr.Narrative.TrendingNarratives {
			emit(CategoryTrending, t.ID, string(t.Momentum), t.Name)
		}
		for _, f := range curr.Narrative.EmergingFringe {
			emit(CategoryFringe, f.ID, string(f.Status), narrativeTitle(f.Headlines))
		}
		for _, c := range curr.Narrative.FringeToMainstream {
			emit(CategoryCrossover, c.ID, "crossover", narrativeTitle(c.Headlines))
		}
		for _, w := range curr.Narrative.NarrativeWatch {
			emit(CategoryWatch, w.ID, string(w.Severity), "")
		}
		for _, d := range curr.Narrative.DisinfoSignals {
			emit(CategoryDisinfo, d.ID, "disinfo", narrativeTitle(d.Headlines))
		}
	}
	return events
}

func firstTitle(h []correlation.Headline) string {
	if len(h) == 0 {
		return ""
	}
	return h[0].Title
}

func narrativeTitle(h []narrative.Headline) string {
	if len(h) == 0 {
		return ""
	}
	return h[0].Title
}
