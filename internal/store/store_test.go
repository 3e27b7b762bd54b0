package store

import (
	"testing"
	"time"

	"github.com/abelbrown/vigil/internal/correlation"
	"github.com/abelbrown/vigil/internal/feeds"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testItem(id string, published time.Time) feeds.Item {
	return feeds.Item{
		ID:         id,
		Source:     feeds.SourceRSS,
		SourceName: "Test Source",
		Title:      "Story " + id,
		Link:       "https://example.com/" + id,
		Published:  published,
		Fetched:    published,
	}
}

func TestSaveAndQueryItems(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	items := []feeds.Item{
		testItem("a", base.Add(-2*time.Hour)),
		testItem("b", base.Add(-time.Hour)),
		testItem("c", base),
	}
	if err := s.SaveItems(items); err != nil {
		t.Fatalf("save items: %v", err)
	}

	got, err := s.ItemsSince(base.Add(-90 * time.Minute))
	if err != nil {
		t.Fatalf("items since: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("order = %s, %s, want c, b", got[0].ID, got[1].ID)
	}
	if got[0].SourceName != "Test Source" || got[0].Source != feeds.SourceRSS {
		t.Errorf("roundtrip lost source fields: %+v", got[0])
	}
}

func TestSaveItemsIgnoresDuplicates(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	item := testItem("a", base)
	if err := s.SaveItems([]feeds.Item{item, item}); err != nil {
		t.Fatalf("save items: %v", err)
	}
	if err := s.SaveItems([]feeds.Item{item}); err != nil {
		t.Fatalf("re-save: %v", err)
	}

	got, err := s.ItemsSince(base.Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("got %d items, want 1 after duplicate inserts", len(got))
	}
}

func TestPruneItemsBefore(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	s.SaveItems([]feeds.Item{
		testItem("old", base.Add(-48*time.Hour)),
		testItem("new", base),
	})

	n, err := s.PruneItemsBefore(base.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d, want 1", n)
	}

	got, _ := s.ItemsSince(base.Add(-72 * time.Hour))
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("survivors = %+v, want only 'new'", got)
	}
}

func TestHistoryKVRoundtrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Errorf("missing key: ok=%v err=%v", ok, err)
	}

	if err := s.Set("k", []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := s.Get("k")
	if err != nil || !ok || string(got) != "v1" {
		t.Errorf("Get = %q, %v, %v", got, ok, err)
	}

	// Upsert overwrites.
	if err := s.Set("k", []byte("v2")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _, _ = s.Get("k")
	if string(got) != "v2" {
		t.Errorf("after upsert Get = %q, want v2", got)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("key survived Clear")
	}
}

// The store is the production KV backend for the correlation engine's
// hourly history; hold that contract at compile time and in behavior.
var _ correlation.KV = (*Store)(nil)

func TestStoreBacksEngineHistory(t *testing.T) {
	s := openTestStore(t)
	h := correlation.NewHistory(s)
	base := time.Date(2026, 8, 30, 0, 30, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		h.ObserveHourly("topic", 2, base.Add(time.Duration(i)*time.Hour))
	}
	// History persisted through SQLite survives a fresh History instance.
	h2 := correlation.NewHistory(s)
	z := h2.ObserveHourly("topic", 2, base.Add(3*time.Hour))
	if z != 0 {
		t.Errorf("flat history z = %v, want 0", z)
	}
	data, ok, err := s.Get("hourly:topic")
	if err != nil || !ok || len(data) == 0 {
		t.Errorf("persisted hourly series missing: ok=%v err=%v", ok, err)
	}
}
