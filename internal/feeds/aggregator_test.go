package feeds

import (
	"fmt"
	"testing"
	"time"
)

func testItem(id, link string, published time.Time) Item {
	return Item{
		ID:         id,
		Title:      "Story " + id,
		Link:       link,
		SourceName: "Test Source",
		Published:  published,
	}
}

func TestMergeItemsDeduplicatesByLink(t *testing.T) {
	a := NewAggregator()
	now := time.Now()

	added := a.MergeItems([]Item{
		testItem("1", "https://example.com/a", now),
		testItem("2", "https://example.com/b", now),
	})
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}

	// Same links again, plus one new.
	added = a.MergeItems([]Item{
		testItem("1", "https://example.com/a", now),
		testItem("3", "https://example.com/c", now),
	})
	if added != 1 {
		t.Errorf("added = %d, want 1 (duplicate link skipped)", added)
	}
	if a.ItemCount() != 3 {
		t.Errorf("item count = %d, want 3", a.ItemCount())
	}
}

func TestMergeItemsKeepsLinklessItems(t *testing.T) {
	a := NewAggregator()
	now := time.Now()
	added := a.MergeItems([]Item{
		testItem("1", "", now),
		testItem("2", "", now),
	})
	if added != 2 {
		t.Errorf("added = %d, want 2 (no link, no dedup)", added)
	}
}

func TestMergeItemsBlocksAds(t *testing.T) {
	a := NewAggregator()
	items := []Item{
		{ID: "1", Title: "Sponsored: best deals on laptops", Link: "https://example.com/ad"},
		{ID: "2", Title: "Real headline", Link: "https://example.com/real"},
	}
	if added := a.MergeItems(items); added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	if a.BlockedCount() != 1 {
		t.Errorf("blocked = %d, want 1", a.BlockedCount())
	}
}

func TestItemsSinceNewestFirst(t *testing.T) {
	a := NewAggregator()
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	a.MergeItems([]Item{
		testItem("old", "https://example.com/old", base.Add(-2*time.Hour)),
		testItem("mid", "https://example.com/mid", base.Add(-30*time.Minute)),
		testItem("new", "https://example.com/new", base),
	})

	got := a.ItemsSince(base.Add(-time.Hour))
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "new" || got[1].ID != "mid" {
		t.Errorf("order = %s, %s, want newest first", got[0].ID, got[1].ID)
	}
}

func TestEvictionDropsOldestFirst(t *testing.T) {
	a := NewAggregator()
	base := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	var items []Item
	for i := 0; i < maxItems+10; i++ {
		items = append(items, testItem(
			fmt.Sprintf("%d", i),
			fmt.Sprintf("https://example.com/%d", i),
			base.Add(time.Duration(i)*time.Second)))
	}
	a.MergeItems(items)

	if a.ItemCount() != maxItems {
		t.Fatalf("item count = %d, want cap %d", a.ItemCount(), maxItems)
	}
	// Evicted links are re-admittable.
	if added := a.MergeItems([]Item{testItem("0", "https://example.com/0", base)}); added != 1 {
		t.Error("evicted link should not stay in the dedup set")
	}
}

func TestFilterShouldBlock(t *testing.T) {
	f := DefaultFilter()
	blocked := []string{
		"Sponsored: 10 gadgets you need",
		"This week's PAID CONTENT roundup",
		"[Ad] Limited offer",
		"Best cash back card of 2026",
	}
	for _, title := range blocked {
		if !f.ShouldBlock(Item{Title: title}) {
			t.Errorf("%q should be blocked", title)
		}
	}
	allowed := []string{
		"Markets rally on rate cut hopes",
		"Advertising industry faces new rules", // About ads, not an ad.
	}
	for _, title := range allowed {
		if f.ShouldBlock(Item{Title: title}) {
			t.Errorf("%q should not be blocked", title)
		}
	}
}
