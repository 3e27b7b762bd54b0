// Package fetch retrieves content from RSS/Atom feed sources and converts
// it to feeds.Item for the analysis pipeline.
package fetch

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/abelbrown/vigil/internal/feeds"
	"github.com/abelbrown/vigil/internal/resilience"
)

const defaultUserAgent = "Vigil/0.1 (https://github.com/abelbrown/vigil)"

// Fetcher retrieves items from feed sources. It holds no per-feed state;
// breaker and health gating belong to the coordinator.
type Fetcher struct {
	client    *http.Client
	cache     *resilience.Cache
	userAgent string
}

// NewFetcher creates a Fetcher with the given per-request timeout and an
// optional response cache (nil disables caching).
func NewFetcher(timeout time.Duration, cache *resilience.Cache) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		cache:     cache,
		userAgent: defaultUserAgent,
	}
}

// Fetch retrieves items from a feed. A fresh cached body is used without
// touching the network. Does NOT store items - caller decides what to do
// with them. Respects context cancellation.
func (f *Fetcher) Fetch(ctx context.Context, src feeds.RSSFeedConfig) ([]feeds.Item, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if f.cache != nil {
		if body, ok := f.cache.Get(src.URL); ok {
			return f.parse(body, src)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}
	if f.cache != nil {
		f.cache.Set(src.URL, body)
	}

	return f.parse(body, src)
}

// parse converts a raw feed body into items.
func (f *Fetcher) parse(body []byte, src feeds.RSSFeedConfig) ([]feeds.Item, error) {
	parser := gofeed.NewParser()
	feed, err := parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	now := time.Now()
	items := make([]feeds.Item, 0, len(feed.Items))
	for _, feedItem := range feed.Items {
		items = append(items, convertFeedItem(feedItem, src, now))
	}
	return items, nil
}

// convertFeedItem converts a gofeed.Item to a feeds.Item.
func convertFeedItem(feedItem *gofeed.Item, src feeds.RSSFeedConfig, fetchTime time.Time) feeds.Item {
	// Get published time, fallback to fetch time if not available
	published := fetchTime
	if feedItem.PublishedParsed != nil {
		published = *feedItem.PublishedParsed
	} else if feedItem.UpdatedParsed != nil {
		published = *feedItem.UpdatedParsed
	}

	description := feedItem.Description
	if description == "" && feedItem.Content != "" {
		description = truncate(feedItem.Content, 500)
	}

	return feeds.Item{
		ID:          generateID(feedItem),
		Source:      feeds.SourceRSS,
		SourceName:  src.Name,
		Title:       feedItem.Title,
		Description: description,
		Link:        feedItem.Link,
		Category:    src.Category,
		Published:   published,
		Fetched:     fetchTime,
		Topics:      feedItem.Categories,
	}
}

// generateID creates a deterministic ID for a feed item.
// Uses the GUID if available, otherwise hashes the URL.
func generateID(feedItem *gofeed.Item) string {
	if feedItem.GUID != "" {
		return hashString(feedItem.GUID)
	}
	if feedItem.Link != "" {
		return hashString(feedItem.Link)
	}
	// Last resort: hash title + published time
	key := feedItem.Title
	if feedItem.PublishedParsed != nil {
		key += feedItem.PublishedParsed.String()
	}
	return hashString(key)
}

// hashString creates a short hash of a string for use as an ID.
func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:8]) // 16 character hex string
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
// Uses rune-aware slicing to avoid breaking UTF-8 characters.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
