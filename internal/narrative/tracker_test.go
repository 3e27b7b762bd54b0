package narrative

import (
	"fmt"
	"testing"

	"github.com/abelbrown/vigil/internal/feeds"
)

func newsItem(title, source string) feeds.Item {
	return feeds.Item{
		ID:         title + "/" + source,
		Title:      title,
		Link:       "https://example.com/" + title,
		SourceName: source,
	}
}

func findTrending(r *Results, id string) *TrendingNarrative {
	for i := range r.TrendingNarratives {
		if r.TrendingNarratives[i].ID == id {
			return &r.TrendingNarratives[i]
		}
	}
	return nil
}

func TestAnalyzeNarrativesEmptyInput(t *testing.T) {
	tr := NewTracker()
	if got := tr.AnalyzeNarratives(nil); got != nil {
		t.Errorf("expected nil for nil input, got %+v", got)
	}
	if got := tr.AnalyzeNarratives([]feeds.Item{}); got != nil {
		t.Errorf("expected nil for empty input, got %+v", got)
	}
}

func TestTrendingRequiresTwoMentions(t *testing.T) {
	tr := NewTracker()
	one := []feeds.Item{newsItem("Recession looms over markets", "Reuters")}
	results := tr.AnalyzeNarratives(one)
	if results == nil {
		t.Fatal("expected results")
	}
	if findTrending(results, "recession-fears") != nil {
		t.Error("single mention should not report as trending")
	}

	two := append(one, newsItem("Economists warn of recession risk", "BBC World"))
	results = NewTracker().AnalyzeNarratives(two)
	tn := findTrending(results, "recession-fears")
	if tn == nil {
		t.Fatal("two mentions should report as trending")
	}
	if tn.Count != 2 {
		t.Errorf("count = %d, want 2", tn.Count)
	}
	if tn.Momentum != TrendStable {
		t.Errorf("first observation momentum = %s, want stable", tn.Momentum)
	}
}

func TestTrendingMatchesDescription(t *testing.T) {
	tr := NewTracker()
	items := []feeds.Item{
		{ID: "a", Title: "Markets slide", Description: "Analysts fear a recession is near", SourceName: "Reuters"},
		{ID: "b", Title: "Fed holds rates", Description: "Recession risk cited in statement", SourceName: "Bloomberg"},
	}
	results := tr.AnalyzeNarratives(items)
	if findTrending(results, "recession-fears") == nil {
		t.Error("description-only matches should count toward trending")
	}
}

func TestObserveMomentum(t *testing.T) {
	tr := NewTracker()

	// Fewer than 2 prior points reads as stable.
	if got := tr.observeMomentum("n", 5); got != TrendStable {
		t.Errorf("first observation = %s, want stable", got)
	}
	if got := tr.observeMomentum("n", 5); got != TrendStable {
		t.Errorf("second observation = %s, want stable", got)
	}

	// Prior [5, 5], mean 5: 7 > 6.0 is rising.
	if got := tr.observeMomentum("n", 7); got != TrendRising {
		t.Errorf("7 against mean 5 = %s, want rising", got)
	}
	// Prior [5, 5, 7], mean 5.67: 3 < 4.53 is falling.
	if got := tr.observeMomentum("n", 3); got != TrendFalling {
		t.Errorf("3 against mean 5.67 = %s, want falling", got)
	}
	// Prior [5, 5, 7, 3], mean 5: 5 is within the band.
	if got := tr.observeMomentum("n", 5); got != TrendStable {
		t.Errorf("5 against mean 5 = %s, want stable", got)
	}
}

func TestClearHistoryResetsMomentum(t *testing.T) {
	tr := NewTracker()
	tr.observeMomentum("n", 2)
	tr.observeMomentum("n", 2)
	if got := tr.observeMomentum("n", 9); got != TrendRising {
		t.Fatalf("precondition: expected rising, got %s", got)
	}
	tr.ClearHistory()
	if got := tr.observeMomentum("n", 9); got != TrendStable {
		t.Errorf("after ClearHistory = %s, want stable", got)
	}
}

func TestSentiment(t *testing.T) {
	pos := []feeds.Item{
		newsItem("Breakthrough agreement reached in talks", "Reuters"),
		newsItem("Recovery shows progress", "BBC World"),
	}
	if got := sentiment(pos); got != SentimentPositive {
		t.Errorf("sentiment = %s, want positive", got)
	}

	neg := []feeds.Item{
		newsItem("Crisis deepens amid collapse fears", "Reuters"),
		newsItem("Deadly disaster warning issued", "BBC World"),
	}
	if got := sentiment(neg); got != SentimentNegative {
		t.Errorf("sentiment = %s, want negative", got)
	}

	mixed := []feeds.Item{
		newsItem("Crisis resolved after breakthrough, collapse averted", "Reuters"),
	}
	// One positive-heavy headline against one crisis term can tie; the
	// important property is that ties land on neutral, never panic.
	_ = sentiment(mixed)

	if got := sentiment([]feeds.Item{newsItem("Quarterly report released", "Reuters")}); got != SentimentNeutral {
		t.Errorf("no keyword hits = %s, want neutral", got)
	}
}

func TestFringeStatusLadder(t *testing.T) {
	tr := NewTracker()
	build := func(n int) []feeds.Item {
		var items []feeds.Item
		for i := 0; i < n; i++ {
			items = append(items, newsItem(
				fmt.Sprintf("Dollar collapse imminent, say analysts %d", i), "ZeroHedge"))
		}
		return items
	}

	results := tr.AnalyzeNarratives(build(1))
	if len(results.EmergingFringe) != 1 || results.EmergingFringe[0].Status != StatusEmerging {
		t.Errorf("1 fringe mention: %+v, want emerging", results.EmergingFringe)
	}

	results = tr.AnalyzeNarratives(build(3))
	if len(results.EmergingFringe) != 1 || results.EmergingFringe[0].Status != StatusSpreading {
		t.Errorf("3 fringe mentions: %+v, want spreading", results.EmergingFringe)
	}

	results = tr.AnalyzeNarratives(build(5))
	if len(results.EmergingFringe) != 1 || results.EmergingFringe[0].Status != StatusViral {
		t.Errorf("5 fringe mentions: %+v, want viral", results.EmergingFringe)
	}
}

func TestCrossoverBeatsOtherBuckets(t *testing.T) {
	tr := NewTracker()
	items := []feeds.Item{
		newsItem("Dollar collapse theory spreads online", "ZeroHedge"),
		newsItem("Fact check: the dollar collapse claim", "Reuters"),
	}
	results := tr.AnalyzeNarratives(items)

	if len(results.FringeToMainstream) != 1 {
		t.Fatalf("crossover signals = %d, want 1", len(results.FringeToMainstream))
	}
	cs := results.FringeToMainstream[0]
	if cs.ID != "dollar-collapse" {
		t.Errorf("crossover id = %s", cs.ID)
	}
	if cs.MainstreamCount != 1 || cs.FringeCount != 1 {
		t.Errorf("counts = %d mainstream / %d fringe, want 1/1", cs.MainstreamCount, cs.FringeCount)
	}
	if cs.CrossoverLevel != 0.5 {
		t.Errorf("crossover level = %v, want 0.5", cs.CrossoverLevel)
	}
	// Exactly one bucket per narrative.
	if len(results.EmergingFringe) != 0 || len(results.NarrativeWatch) != 0 || len(results.DisinfoSignals) != 0 {
		t.Errorf("crossover narrative leaked into other buckets: %+v", results)
	}
}

func TestCrossoverBeatsDisinfo(t *testing.T) {
	tr := NewTracker()
	items := []feeds.Item{
		newsItem("Athlete died suddenly, posts claim", "Infowars"),
		newsItem("Fact check: the 'died suddenly' claims about the athlete", "Reuters"),
	}
	results := tr.AnalyzeNarratives(items)
	if len(results.FringeToMainstream) != 1 {
		t.Fatalf("expected crossover for crossed-over disinfo narrative, got %+v", results)
	}
	if len(results.DisinfoSignals) != 0 {
		t.Error("disinfo narrative double-reported after crossover")
	}
}

func TestDisinfoWithoutMainstream(t *testing.T) {
	tr := NewTracker()
	items := []feeds.Item{
		newsItem("Another one died suddenly", "BeforeItsNews"),
		newsItem("Died suddenly compilation grows", "NaturalNews"),
	}
	results := tr.AnalyzeNarratives(items)
	if len(results.DisinfoSignals) != 1 {
		t.Fatalf("disinfo signals = %d, want 1", len(results.DisinfoSignals))
	}
	if results.DisinfoSignals[0].ID != "vaccine-injury" {
		t.Errorf("disinfo id = %s", results.DisinfoSignals[0].ID)
	}
	if len(results.EmergingFringe) != 0 {
		t.Error("disinfo narrative also reported as emerging fringe")
	}
}

func TestWatchForUnclassifiedSources(t *testing.T) {
	tr := NewTracker()
	items := []feeds.Item{
		newsItem("Dollar collapse chatter picks up", "Some Newsletter"),
	}
	results := tr.AnalyzeNarratives(items)
	if len(results.NarrativeWatch) != 1 {
		t.Fatalf("watch signals = %d, want 1: %+v", len(results.NarrativeWatch), results)
	}
	if len(results.EmergingFringe) != 0 || len(results.FringeToMainstream) != 0 {
		t.Error("unclassified-source narrative leaked into fringe buckets")
	}
}

func TestSourceAndHeadlineCaps(t *testing.T) {
	tr := NewTracker()
	var items []feeds.Item
	for i := 0; i < 7; i++ {
		items = append(items, newsItem(
			fmt.Sprintf("Recession warning number %d", i),
			fmt.Sprintf("Outlet %d", i)))
	}
	results := tr.AnalyzeNarratives(items)
	tn := findTrending(results, "recession-fears")
	if tn == nil {
		t.Fatal("expected trending narrative")
	}
	if tn.Count != 7 {
		t.Errorf("count = %d, want 7 (uncapped)", tn.Count)
	}
	if len(tn.Sources) != 5 {
		t.Errorf("sources = %d, want cap 5", len(tn.Sources))
	}
	if len(tn.Headlines) != 3 {
		t.Errorf("headlines = %d, want cap 3", len(tn.Headlines))
	}
	if tn.Sources[0] != "Outlet 0" {
		t.Errorf("sources not in first-seen order: %v", tn.Sources)
	}
}
