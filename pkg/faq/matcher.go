package faq

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultThreshold is the minimum similarity a stored question needs to count as a match.
const DefaultThreshold = 0.65

// Match is the best-scoring entry for a query.
type Match struct {
	Entry
	Score float64
}

// Matcher answers free-text queries from a fixed FAQ list.
// It does a full scan per query; there is no index, so keep the list small.
type Matcher struct {
	entries []Entry
}

func NewMatcher(entries []Entry) *Matcher {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Matcher{entries: cp}
}

func (m *Matcher) Entries() []Entry {
	cp := make([]Entry, len(m.entries))
	copy(cp, m.entries)
	return cp
}

func (m *Matcher) Len() int {
	return len(m.entries)
}

// FindBestMatch returns the entry whose question is most similar to query.
// Ties keep the earliest entry. ok is false when nothing reaches threshold.
func (m *Matcher) FindBestMatch(query string, threshold float64) (Match, bool) {
	var (
		best    Match
		highest float64
		found   bool
	)

	q := strings.ToLower(query)
	for _, e := range m.entries {
		score := ratio(q, strings.ToLower(e.Question))
		if score > highest {
			highest = score
			best = Match{Entry: e, Score: score}
			found = true
		}
	}

	if !found || highest < threshold {
		return Match{}, false
	}
	return best, true
}

// FindBestMatchDefault is FindBestMatch with DefaultThreshold.
func (m *Matcher) FindBestMatchDefault(query string) (Match, bool) {
	return m.FindBestMatch(query, DefaultThreshold)
}

// Similarity is the case-insensitive matching-blocks ratio of a and b, in [0, 1].
func Similarity(a, b string) float64 {
	return ratio(strings.ToLower(a), strings.ToLower(b))
}

func ratio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

// splitRunes turns s into one element per code point so multi-byte scripts
// are compared character by character.
func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
