// Package match provides the matcher primitives used by the pattern tables.
//
// Topic and mainstream-narrative tables match with regular expressions;
// fringe-narrative tables match with plain substring containment. Both are
// exposed behind the same Matcher interface so the engines never need to
// know which kind of pattern they hold.
package match

import (
	"regexp"
	"strings"
)

// Matcher reports whether a piece of text matches a fixed pattern.
// All matching is case-insensitive.
type Matcher interface {
	Matches(text string) bool
}

// RegexMatcher matches with a case-insensitive compiled regexp.
type RegexMatcher struct {
	re *regexp.Regexp
}

// Regex compiles a case-insensitive regex matcher.
// Panics on an invalid expression: the pattern tables are static data and
// a bad entry is a programming bug, not a runtime condition.
func Regex(expr string) RegexMatcher {
	return RegexMatcher{re: regexp.MustCompile("(?i)" + expr)}
}

func (m RegexMatcher) Matches(text string) bool {
	return m.re.MatchString(text)
}

// String returns the source expression without the case-folding prefix.
func (m RegexMatcher) String() string {
	return strings.TrimPrefix(m.re.String(), "(?i)")
}

// SubstringMatcher matches by case-insensitive substring containment.
type SubstringMatcher struct {
	needle string
}

// Substring creates a substring matcher.
func Substring(needle string) SubstringMatcher {
	return SubstringMatcher{needle: strings.ToLower(needle)}
}

func (m SubstringMatcher) Matches(text string) bool {
	return strings.Contains(strings.ToLower(text), m.needle)
}

func (m SubstringMatcher) String() string {
	return m.needle
}

// Any reports whether any matcher in the set matches the text.
func Any[M Matcher](matchers []M, text string) bool {
	for _, m := range matchers {
		if m.Matches(text) {
			return true
		}
	}
	return false
}

// Regexes compiles a list of expressions into regex matchers.
func Regexes(exprs ...string) []RegexMatcher {
	out := make([]RegexMatcher, len(exprs))
	for i, e := range exprs {
		out[i] = Regex(e)
	}
	return out
}

// Substrings creates a list of substring matchers.
func Substrings(needles ...string) []SubstringMatcher {
	out := make([]SubstringMatcher, len(needles))
	for i, n := range needles {
		out[i] = Substring(n)
	}
	return out
}
