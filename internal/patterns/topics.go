// Package patterns holds the static, hand-authored pattern tables that
// drive the correlation engine and the narrative tracker. Pure data, no
// behavior beyond lookup helpers.
package patterns

import "github.com/abelbrown/vigil/internal/match"

// Topic is a named, pattern-matched category of news content.
// An item may match any number of topics independently.
type Topic struct {
	ID       string
	Patterns []match.RegexMatcher
	Category string // Display grouping: "conflict", "economy", "politics", ...
}

// Topics is the full topic table. IDs are stable: the alert layer diffs
// result snapshots by id, so entries are renamed only with care.
var Topics = []Topic{
	{
		ID:       "russia-ukraine",
		Category: "conflict",
		Patterns: match.Regexes(`ukrain`, `zelensky`, `kyiv|kiev`, `russia.*(front|offensive|strike|invasion)`, `donbas|kharkiv|crimea`),
	},
	{
		ID:       "middle-east",
		Category: "conflict",
		Patterns: match.Regexes(`gaza`, `israel`, `hezbollah`, `west bank`, `netanyahu`, `idf`),
	},
	{
		ID:       "iran-tensions",
		Category: "conflict",
		Patterns: match.Regexes(`iran`, `tehran`, `irgc|revolutionary guard`, `strait of hormuz`),
	},
	{
		ID:       "taiwan-strait",
		Category: "conflict",
		Patterns: match.Regexes(`taiwan`, `taipei`, `pla.*(drill|exercise|incursion)`, `taiwan strait`),
	},
	{
		ID:       "north-korea",
		Category: "conflict",
		Patterns: match.Regexes(`north korea`, `pyongyang`, `kim jong`, `dprk`),
	},
	{
		ID:       "tariffs",
		Category: "economy",
		Patterns: match.Regexes(`tariff`, `trade war`, `import dut(y|ies)`, `trade barrier`),
	},
	{
		ID:       "inflation",
		Category: "economy",
		Patterns: match.Regexes(`inflation`, `consumer price`, `cost of living`, `cpi report`),
	},
	{
		ID:       "fed-policy",
		Category: "economy",
		Patterns: match.Regexes(`federal reserve`, `interest rate`, `rate (hike|cut)`, `fomc`, `powell`),
	},
	{
		ID:       "market-selloff",
		Category: "economy",
		Patterns: match.Regexes(`market (selloff|sell-off|rout|plunge)`, `stocks (tumble|sink|slide|crash)`, `bear market`, `correction territory`),
	},
	{
		ID:       "oil-energy",
		Category: "economy",
		Patterns: match.Regexes(`oil price`, `opec`, `crude`, `energy crisis`, `natural gas.*(price|supply)`),
	},
	{
		ID:       "banking-stress",
		Category: "economy",
		Patterns: match.Regexes(`bank (run|failure|collapse)`, `credit crunch`, `liquidity crisis`, `deposit flight`),
	},
	{
		ID:       "election-integrity",
		Category: "politics",
		Patterns: match.Regexes(`election.*(fraud|integrity|interference)`, `voter (suppression|fraud)`, `ballot`),
	},
	{
		ID:       "government-shutdown",
		Category: "politics",
		Patterns: match.Regexes(`government shutdown`, `debt ceiling`, `budget impasse`, `continuing resolution`),
	},
	{
		ID:       "cyber-attack",
		Category: "security",
		Patterns: match.Regexes(`cyber ?attack`, `ransomware`, `data breach`, `hack(ed|ers?) `, `zero.day`),
	},
	{
		ID:       "pandemic-health",
		Category: "health",
		Patterns: match.Regexes(`outbreak`, `pandemic`, `epidemic`, `who declares`, `h5n1|bird flu`, `quarantine`),
	},
	{
		ID:       "supply-chain",
		Category: "economy",
		Patterns: match.Regexes(`supply chain`, `shipping (delay|disruption)`, `port (congestion|closure)`, `container shortage`),
	},
	{
		ID:       "ai-regulation",
		Category: "technology",
		Patterns: match.Regexes(`ai (regulation|safety|act)`, `artificial intelligence.*(law|rule|ban)`, `deepfake`),
	},
	{
		ID:       "mass-protest",
		Category: "politics",
		Patterns: match.Regexes(`mass protest`, `demonstrators`, `general strike`, `riot police`, `civil unrest`),
	},
}

// TopicByID returns the topic with the given id, or nil.
func TopicByID(id string) *Topic {
	for i := range Topics {
		if Topics[i].ID == id {
			return &Topics[i]
		}
	}
	return nil
}

// MatchesTopic reports whether a title matches any of the topic's patterns.
func MatchesTopic(t Topic, title string) bool {
	return match.Any(t.Patterns, title)
}
