package correlation

// Level grades the strength of a detected pattern.
type Level string

const (
	LevelEmerging Level = "emerging"
	LevelElevated Level = "elevated"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical" // Compound signals only
)

// rank orders levels for monotonicity checks and sorting.
func (l Level) rank() int {
	switch l {
	case LevelCritical:
		return 3
	case LevelHigh:
		return 2
	case LevelElevated:
		return 1
	default:
		return 0
	}
}

// Momentum labels the trajectory of a topic's mention rate.
type Momentum string

const (
	MomentumStable  Momentum = "stable"
	MomentumRising  Momentum = "rising"
	MomentumSurging Momentum = "surging"
)

// Confidence grades a predictive signal.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Headline is a sampled matched item.
type Headline struct {
	Title  string
	Link   string
	Source string
}

// TopicStats is the per-topic tally built fresh on every analysis call.
type TopicStats struct {
	Count         int
	WeightedCount float64
	Sources       map[string]bool
	Headlines     []Headline // First 5 seen
	Velocity      float64
	Acceleration  float64
	ZScore        float64
}

// SourceNames returns the distinct sources, order unspecified.
func (ts *TopicStats) SourceNames() []string {
	out := make([]string, 0, len(ts.Sources))
	for s := range ts.Sources {
		out = append(out, s)
	}
	return out
}

// EmergingPattern is a topic whose current mention count crossed the
// standalone activity floor.
type EmergingPattern struct {
	ID            string
	Category      string
	Count         int
	WeightedCount float64
	SourceCount   int
	ZScore        float64
	Level         Level
	Headlines     []Headline
}

// MomentumSignal is a topic accelerating inside the short minute window.
type MomentumSignal struct {
	ID           string
	Count        int
	Delta        int // Count change vs 10 minutes ago
	Velocity     float64
	Acceleration float64
	Momentum     Momentum
}

// CrossSourceCorrelation is a topic independently covered by several outlets.
type CrossSourceCorrelation struct {
	ID          string
	SourceCount int
	Sources     []string
	Level       Level
}

// PredictiveSignal is a composite forward-looking score over one topic.
type PredictiveSignal struct {
	ID         string
	Score      float64
	Confidence int // 0-95
	Level      Confidence
	Prediction string
}

// CompoundSignal is a cross-topic escalation pattern that fired.
type CompoundSignal struct {
	ID           string
	Name         string
	ActiveTopics []string
	Score        float64
	Level        Level
	Prediction   string
}

// Results is the full output of one analysis run. Weak or absent signal is
// modeled as empty lists, never as an error.
type Results struct {
	EmergingPatterns        []EmergingPattern
	MomentumSignals         []MomentumSignal
	CrossSourceCorrelations []CrossSourceCorrelation
	PredictiveSignals       []PredictiveSignal
	CompoundSignals         []CompoundSignal
	TopicStats              map[string]*TopicStats
}
