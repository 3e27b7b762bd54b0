package feeds

import "time"

// SourceType identifies the origin of a feed item
type SourceType string

const (
	SourceRSS    SourceType = "rss"
	SourceMarket SourceType = "market"
	SourceAlert  SourceType = "alert"
)

// Item represents a single normalized piece of content from any source.
// This is the unified type that flows into the analysis engines. Items are
// immutable once produced by the fetch layer; Published is the sort and
// recency key everywhere.
type Item struct {
	ID           string
	Source       SourceType
	SourceName   string // "Reuters", "BBC World", "Polymarket"
	Title        string
	Description  string
	Link         string
	Category     string // Feed category ("wire", "tv-us", ...)
	Published    time.Time
	Fetched      time.Time
	IsAlert      bool   // Matched a standing alert keyword at ingest
	AlertKeyword string
	Region       string
	Topics       []string // Topic hints attached by the feed, if any
}

// RSSFeedConfig describes one subscribed feed
type RSSFeedConfig struct {
	Name           string
	URL            string
	Category       string
	RefreshMinutes int
	Weight         float64 // 1.0 = normal, >1 = more important, <1 = less important
}

// Refresh interval tiers, in minutes
const (
	RefreshFast   = 5
	RefreshNormal = 10
	RefreshSlow   = 20
	RefreshLazy   = 30
	RefreshHourly = 60
)
