package router

import (
	"strings"
)

// Prefix constants for explicit routing directives
const (
	PrefixAI  = "/ai"
	PrefixFAQ = "/faq"
)

// Mode represents how a query is routed
type Mode string

const (
	ModeAuto    Mode = "AUTO"     // FAQ first, generated reply otherwise
	ModeAIOnly  Mode = "AI_ONLY"  // Skip the FAQ lookup
	ModeFAQOnly Mode = "FAQ_ONLY" // Never call the generation service
)

// ParsedQuery contains routing information extracted from the raw text
type ParsedQuery struct {
	Original string
	Clean    string
	Mode     Mode
}

// Parse extracts a routing directive from text
// Supports:
//   - /ai <question> → generated reply only
//   - /faq <question> → FAQ lookup only
//   - <question> → FAQ first, then generated reply
func Parse(text string) *ParsedQuery {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	for _, d := range []struct {
		prefix string
		mode   Mode
	}{
		{PrefixFAQ, ModeFAQOnly},
		{PrefixAI, ModeAIOnly},
	} {
		if !strings.HasPrefix(lower, d.prefix) {
			continue
		}
		rest := trimmed[len(d.prefix):]
		if rest == "" || rest[0] == ' ' {
			return &ParsedQuery{Original: text, Clean: strings.TrimSpace(rest), Mode: d.mode}
		}
	}

	return &ParsedQuery{Original: text, Clean: text, Mode: ModeAuto}
}

// IsEmpty returns true if nothing is left after the directive
func (p *ParsedQuery) IsEmpty() bool {
	return strings.TrimSpace(p.Clean) == ""
}
