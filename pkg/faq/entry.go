package faq

import "sort"

// Entry is one question/answer pair from the knowledge file.
type Entry struct {
	Category string `json:"category" mapstructure:"category"`
	Question string `json:"question" mapstructure:"question"`
	Answer   string `json:"answer" mapstructure:"answer"`
}

// Group holds the entries of a single category in their original order.
type Group struct {
	Category string  `json:"category"`
	Entries  []Entry `json:"entries"`
}

// GroupByCategory buckets entries by category, categories sorted by name.
func GroupByCategory(entries []Entry) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(groups)
			index[e.Category] = i
			groups = append(groups, Group{Category: e.Category})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Category < groups[j].Category
	})
	return groups
}
