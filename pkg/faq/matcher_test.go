package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []Entry {
	return []Entry{
		{Category: "Pricing", Question: "How much is bridal henna?", Answer: "Starts at 3000 BDT."},
		{Category: "Products", Question: "Do you use organic henna?", Answer: "Yes, always 100% organic."},
		{Category: "Pricing", Question: "Do you offer bridal packages?", Answer: "Yes, see the packages page."},
		{Category: "Aftercare", Question: "How long does henna last?", Answer: "Usually one to three weeks."},
		{Category: "General", Question: "Where are you located?", Answer: "Dhaka, Bangladesh."},
	}
}

func TestFindBestMatch(t *testing.T) {
	m := NewMatcher(sampleEntries())

	tests := []struct {
		name         string
		query        string
		wantOK       bool
		wantQuestion string
	}{
		{
			name:         "paraphrased price question",
			query:        "how much does bridal henna cost",
			wantOK:       true,
			wantQuestion: "How much is bridal henna?",
		},
		{
			name:         "synonym swap",
			query:        "do you use natural henna",
			wantOK:       true,
			wantQuestion: "Do you use organic henna?",
		},
		{
			name:         "duration question",
			query:        "how long does the henna stay",
			wantOK:       true,
			wantQuestion: "How long does henna last?",
		},
		{
			name:         "case insensitive",
			query:        "WHERE ARE YOU LOCATED",
			wantOK:       true,
			wantQuestion: "Where are you located?",
		},
		{
			name:   "greeting below threshold",
			query:  "hello",
			wantOK: false,
		},
		{
			name:   "empty query",
			query:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.FindBestMatch(tt.query, DefaultThreshold)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantQuestion, got.Question)
				assert.GreaterOrEqual(t, got.Score, DefaultThreshold)
			} else {
				assert.Empty(t, got.Question)
			}
		})
	}
}

func TestFindBestMatch_ReturnsMaximum(t *testing.T) {
	entries := sampleEntries()
	m := NewMatcher(entries)

	got, ok := m.FindBestMatch("hello", 0.0001)
	require.True(t, ok)

	for _, e := range entries {
		assert.LessOrEqual(t, Similarity("hello", e.Question), got.Score)
	}
	assert.Equal(t, "Where are you located?", got.Question)
}

func TestFindBestMatch_ThresholdIsInclusive(t *testing.T) {
	m := NewMatcher(sampleEntries())
	query := "how much does bridal henna cost"
	score := Similarity(query, "How much is bridal henna?")

	got, ok := m.FindBestMatch(query, score)
	require.True(t, ok)
	assert.Equal(t, "Starts at 3000 BDT.", got.Answer)

	_, ok = m.FindBestMatch(query, score+0.0001)
	assert.False(t, ok)
}

func TestFindBestMatch_FirstEntryWinsTies(t *testing.T) {
	m := NewMatcher([]Entry{
		{Category: "A", Question: "Do you travel?", Answer: "first"},
		{Category: "B", Question: "Do you travel?", Answer: "second"},
	})

	got, ok := m.FindBestMatchDefault("do you travel?")
	require.True(t, ok)
	assert.Equal(t, "first", got.Answer)
	assert.Equal(t, 1.0, got.Score)
}

func TestFindBestMatch_EmptyList(t *testing.T) {
	m := NewMatcher(nil)

	_, ok := m.FindBestMatch("how much is bridal henna?", DefaultThreshold)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("Henna", "hENNA"))
	assert.Equal(t, 0.0, Similarity("", "How much is bridal henna?"))
	assert.InDelta(t, 0.8214, Similarity("how much does bridal henna cost", "How much is bridal henna?"), 0.001)
	assert.InDelta(t, 0.9767, Similarity("Where are you located", "Where are you located?"), 0.001)

	// Bangla text is compared per character, not per byte.
	assert.Equal(t, 1.0, Similarity("মেহেদি", "মেহেদি"))
	assert.Greater(t, Similarity("মেহেদি কত", "মেহেদি"), 0.5)
}

func TestGroupByCategory(t *testing.T) {
	groups := GroupByCategory(sampleEntries())

	require.Len(t, groups, 4)
	assert.Equal(t, "Aftercare", groups[0].Category)
	assert.Equal(t, "General", groups[1].Category)
	assert.Equal(t, "Pricing", groups[2].Category)
	assert.Equal(t, "Products", groups[3].Category)

	require.Len(t, groups[2].Entries, 2)
	assert.Equal(t, "How much is bridal henna?", groups[2].Entries[0].Question)
	assert.Equal(t, "Do you offer bridal packages?", groups[2].Entries[1].Question)

	assert.Empty(t, GroupByCategory(nil))
}
