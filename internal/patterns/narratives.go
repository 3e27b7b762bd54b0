package patterns

import "github.com/abelbrown/vigil/internal/match"

// Severity grades a fringe narrative.
type Severity string

const (
	SeverityWatch     Severity = "watch"
	SeverityEmerging  Severity = "emerging"
	SeveritySpreading Severity = "spreading"
	SeverityDisinfo   Severity = "disinfo"
)

// Region scopes a mainstream narrative to a coverage area.
type Region string

const (
	RegionGlobal Region = "global"
	RegionBrazil Region = "brazil"
	RegionLatam  Region = "latam"
	RegionMena   Region = "mena"
)

// FringeNarrative is a narrative tracked across fringe and alternative
// outlets. Matching is case-insensitive substring containment over
// title + description.
type FringeNarrative struct {
	ID       string
	Keywords []match.SubstringMatcher
	Category string
	Severity Severity
}

// MainstreamNarrative is a narrative tracked in mainstream coverage.
// Matching is regex over title + " " + description.
type MainstreamNarrative struct {
	ID       string
	Name     string
	Patterns []match.RegexMatcher
	Category string
	Region   Region
}

// FringeNarratives is the fringe/disinfo watch table.
var FringeNarratives = []FringeNarrative{
	{
		ID:       "great-reset",
		Keywords: match.Substrings("great reset", "wef agenda", "davos elite", "you will own nothing"),
		Category: "conspiracy",
		Severity: SeverityWatch,
	},
	{
		ID:       "dollar-collapse",
		Keywords: match.Substrings("dollar collapse", "dedollarization", "brics currency", "end of the dollar", "petrodollar death"),
		Category: "finance",
		Severity: SeverityEmerging,
	},
	{
		ID:       "bank-bailin",
		Keywords: match.Substrings("bail-in", "bank bail in", "deposits confiscated", "fdic can't cover"),
		Category: "finance",
		Severity: SeverityWatch,
	},
	{
		ID:       "vaccine-injury",
		Keywords: match.Substrings("vaccine injury", "died suddenly", "jab death", "vaccine genocide"),
		Category: "health",
		Severity: SeverityDisinfo,
	},
	{
		ID:       "stolen-election",
		Keywords: match.Substrings("stolen election", "rigged election", "ballot dump", "voting machines flipped"),
		Category: "politics",
		Severity: SeverityDisinfo,
	},
	{
		ID:       "15-minute-cities",
		Keywords: match.Substrings("15 minute city", "15-minute city", "climate lockdown", "travel permit zones"),
		Category: "conspiracy",
		Severity: SeverityWatch,
	},
	{
		ID:       "cbdc-control",
		Keywords: match.Substrings("cbdc", "programmable money", "digital dollar control", "cashless control grid"),
		Category: "finance",
		Severity: SeverityEmerging,
	},
	{
		ID:       "food-supply-sabotage",
		Keywords: match.Substrings("food plant fire", "food supply sabotage", "engineered famine", "farmland grab"),
		Category: "conspiracy",
		Severity: SeveritySpreading,
	},
	{
		ID:       "bioweapon-lab",
		Keywords: match.Substrings("biolab", "bioweapon lab", "lab leak coverup", "gain of function coverup"),
		Category: "health",
		Severity: SeverityDisinfo,
	},
	{
		ID:       "false-flag",
		Keywords: match.Substrings("false flag", "crisis actor", "staged attack", "inside job"),
		Category: "conspiracy",
		Severity: SeverityDisinfo,
	},
	{
		ID:       "prepper-surge",
		Keywords: match.Substrings("stock up now", "shtf", "prepare for collapse", "hyperinflation warning"),
		Category: "finance",
		Severity: SeverityWatch,
	},
}

// MainstreamNarratives is the mainstream trend table.
var MainstreamNarratives = []MainstreamNarrative{
	{
		ID:       "recession-fears",
		Name:     "Recession Fears",
		Patterns: match.Regexes(`recession`, `economic (downturn|contraction)`, `soft landing`, `hard landing`),
		Category: "economy",
		Region:   RegionGlobal,
	},
	{
		ID:       "ai-disruption",
		Name:     "AI Labor Disruption",
		Patterns: match.Regexes(`ai.*(job|worker|layoff)`, `automation.*(employment|workforce)`, `replaced by (ai|artificial intelligence)`),
		Category: "technology",
		Region:   RegionGlobal,
	},
	{
		ID:       "immigration-surge",
		Name:     "Immigration Pressure",
		Patterns: match.Regexes(`border (crisis|surge)`, `migrant (crossing|crisis|caravan)`, `asylum (seeker|claim)`),
		Category: "politics",
		Region:   RegionGlobal,
	},
	{
		ID:       "climate-extremes",
		Name:     "Extreme Weather",
		Patterns: match.Regexes(`record (heat|temperature|rainfall)`, `unprecedented (flood|drought|wildfire)`, `climate (emergency|disaster)`),
		Category: "environment",
		Region:   RegionGlobal,
	},
	{
		ID:       "housing-crisis",
		Name:     "Housing Affordability",
		Patterns: match.Regexes(`housing (crisis|affordability)`, `rent (spike|crisis|unaffordable)`, `mortgage rate`),
		Category: "economy",
		Region:   RegionGlobal,
	},
	{
		ID:       "amazon-deforestation",
		Name:     "Amazon Deforestation",
		Patterns: match.Regexes(`amazon (deforestation|rainforest)`, `illegal (logging|mining).*brazil`, `indigenous land`),
		Category: "environment",
		Region:   RegionBrazil,
	},
	{
		ID:       "latam-instability",
		Name:     "Latin America Political Instability",
		Patterns: match.Regexes(`(venezuela|bolivia|peru|ecuador|argentina).*(crisis|coup|unrest|impeach)`, `cartel violence`, `narco`),
		Category: "politics",
		Region:   RegionLatam,
	},
	{
		ID:       "gulf-diplomacy",
		Name:     "Gulf Realignment",
		Patterns: match.Regexes(`saudi.*(deal|normali[sz])`, `abraham accords`, `gulf states.*(china|russia)`, `opec\+? (cut|decision)`),
		Category: "politics",
		Region:   RegionMena,
	},
	{
		ID:       "energy-transition",
		Name:     "Energy Transition",
		Patterns: match.Regexes(`renewable (energy|capacity)`, `ev (sales|adoption|mandate)`, `solar (record|expansion)`, `grid (strain|upgrade)`),
		Category: "environment",
		Region:   RegionGlobal,
	},
}

// Sentiment keyword lists for the narrative tracker. Deliberately coarse;
// the tracker counts hits per list and takes the majority.
var (
	PositiveSentiment = match.Substrings(
		"breakthrough", "recovery", "agreement", "resolved", "progress",
		"improve", "success", "stabilize", "relief", "optimis",
	)
	NegativeSentiment = match.Substrings(
		"crisis", "collapse", "fear", "threat", "warning", "deadly",
		"disaster", "panic", "failure", "escalat", "catastroph",
	)
)
