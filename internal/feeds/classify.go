package feeds

import "strings"

// SourceClass is the provenance classification of a news source.
// The narrative tracker uses it to decide whether a narrative is circulating
// in fringe outlets, alternative media, or mainstream coverage.
type SourceClass int

const (
	ClassUnknown SourceClass = iota
	ClassFringe
	ClassAlternative
	ClassMainstream
)

func (c SourceClass) String() string {
	switch c {
	case ClassFringe:
		return "fringe"
	case ClassAlternative:
		return "alternative"
	case ClassMainstream:
		return "mainstream"
	default:
		return "unknown"
	}
}

// Classification is by substring membership so "BBC World" and "BBC Top"
// both resolve through the "bbc" entry.
var (
	fringeSources = []string{
		"zerohedge", "infowars", "naturalnews", "beforeitsnews",
		"gatewaypundit", "rumormillnews", "davidicke", "veteranstoday",
		"globalresearch", "活力网", "epochtimes",
	}

	alternativeSources = []string{
		"breitbart", "dailycaller", "mintpress", "grayzone",
		"consortiumnews", "antiwar", "unz", "revolver",
		"substack", "rumble", "bitchute",
	}

	mainstreamSources = []string{
		"reuters", "ap news", "associated press", "bbc", "cnn", "nbc",
		"cbs", "abc news", "fox news", "npr", "pbs", "bloomberg",
		"ny times", "new york times", "washington post", "wall st journal",
		"wsj", "guardian", "telegraph", "al jazeera", "france 24",
		"der spiegel", "dw news", "japan times", "south china",
		"times of india", "usa today", "la times", "sydney morning",
		"politico", "axios", "the hill", "financial times",
	}
)

// Classify resolves a source name into its provenance class.
// Unrecognized sources classify as ClassUnknown, never as an error.
func Classify(source string) SourceClass {
	s := strings.ToLower(source)
	for _, f := range fringeSources {
		if strings.Contains(s, f) {
			return ClassFringe
		}
	}
	for _, a := range alternativeSources {
		if strings.Contains(s, a) {
			return ClassAlternative
		}
	}
	for _, m := range mainstreamSources {
		if strings.Contains(s, m) {
			return ClassMainstream
		}
	}
	return ClassUnknown
}

// sourceWeights scales a source's topic contributions. Wire services count
// more than a single partisan outlet; known-unreliable outlets count less.
var sourceWeights = []struct {
	substr string
	weight float64
}{
	{"reuters", 1.5},
	{"ap news", 1.5},
	{"associated press", 1.5},
	{"bbc", 1.3},
	{"bloomberg", 1.3},
	{"financial times", 1.3},
	{"al jazeera", 1.2},
	{"npr", 1.2},
	{"guardian", 1.2},
	{"ny times", 1.2},
	{"new york times", 1.2},
	{"washington post", 1.2},
	{"wall st journal", 1.2},
	{"zerohedge", 0.4},
	{"infowars", 0.4},
	{"naturalnews", 0.4},
	{"beforeitsnews", 0.4},
	{"gatewaypundit", 0.5},
	{"epochtimes", 0.5},
}

// SourceWeight returns the score multiplier for a source name.
// Defaults to 1.0 for sources without an explicit entry.
func SourceWeight(source string) float64 {
	s := strings.ToLower(source)
	for _, sw := range sourceWeights {
		if strings.Contains(s, sw.substr) {
			return sw.weight
		}
	}
	return 1.0
}
