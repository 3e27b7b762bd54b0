package narrative

import "github.com/abelbrown/vigil/internal/patterns"

// Trend labels a narrative's momentum against its prior window.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// Sentiment is the coarse two-list keyword verdict over matched headlines.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Status grades how widely a fringe narrative is circulating.
type Status string

const (
	StatusEmerging  Status = "emerging"
	StatusSpreading Status = "spreading"
	StatusViral     Status = "viral"
)

// Headline is a sampled matched item.
type Headline struct {
	Title  string
	Link   string
	Source string
}

// TrendingNarrative is a mainstream narrative with enough mentions to report.
type TrendingNarrative struct {
	ID        string
	Name      string
	Category  string
	Region    patterns.Region
	Count     int
	Momentum  Trend
	Sentiment Sentiment
	Sources   []string // Capped at 5 distinct
	Headlines []Headline
}

// FringeSignal is a narrative circulating in fringe/alternative outlets.
type FringeSignal struct {
	ID        string
	Category  string
	Severity  patterns.Severity
	Count     int
	Status    Status
	Sources   []string
	Headlines []Headline
}

// CrossoverSignal is a fringe narrative that has reached mainstream coverage.
type CrossoverSignal struct {
	ID              string
	Category        string
	Severity        patterns.Severity
	Count           int
	MainstreamCount int
	FringeCount     int
	CrossoverLevel  float64 // mainstream matches / total matches
	Sources         []string
	Headlines       []Headline
}

// DisinfoSignal is a known-disinformation narrative with any circulation.
type DisinfoSignal struct {
	ID        string
	Category  string
	Count     int
	Sources   []string
	Headlines []Headline
}

// WatchSignal is a tracked narrative with no notable source skew.
type WatchSignal struct {
	ID        string
	Category  string
	Severity  patterns.Severity
	Count     int
	Sources   []string
	Headlines []Headline
}

// Results is the full output of one narrative pass. Empty lists mean no
// signal, never an error.
type Results struct {
	TrendingNarratives []TrendingNarrative
	EmergingFringe     []FringeSignal
	FringeToMainstream []CrossoverSignal
	NarrativeWatch     []WatchSignal
	DisinfoSignals     []DisinfoSignal
}
