package router

import (
	"context"
	"fmt"

	"henna-assistant-be/pkg/ai/agent"
	"henna-assistant-be/pkg/faq"
)

// Source tells where a reply came from.
type Source string

const (
	SourceFAQ  Source = "faq"
	SourceAI   Source = "ai"
	SourceHelp Source = "help"
)

const NoFAQMatchMessage = "🔍 No close FAQ match found. Try rephrasing, or ask without /faq to get an AI answer."

// Generator produces a generated reply for a query.
type Generator interface {
	Generate(ctx context.Context, input string) agent.Result
}

// Logger is the subset of the application logger the router writes to.
type Logger interface {
	Info(module, message string, details map[string]interface{})
}

// Reply is the unified result of routing one query
type Reply struct {
	Text     string
	Source   Source
	Mode     Mode
	Question string       // matched FAQ question, if any
	Score    float64      // FAQ similarity, if any
	Result   agent.Result // generation outcome when Source is SourceAI
}

// QueryRouter answers from the FAQ when a close match exists and falls back to the generator.
type QueryRouter struct {
	matcher   *faq.Matcher
	generator Generator
	threshold float64
	logger    Logger
}

func NewQueryRouter(matcher *faq.Matcher, generator Generator, logger Logger) *QueryRouter {
	if matcher == nil {
		matcher = faq.NewMatcher(nil)
	}
	return &QueryRouter{
		matcher:   matcher,
		generator: generator,
		threshold: faq.DefaultThreshold,
		logger:    logger,
	}
}

// WithThreshold returns a copy of the router using a different match threshold.
func (r *QueryRouter) WithThreshold(t float64) *QueryRouter {
	cp := *r
	cp.threshold = t
	return &cp
}

// Process routes text and reports where the reply came from.
func (r *QueryRouter) Process(ctx context.Context, text string) Reply {
	parsed := Parse(text)

	if parsed.Mode != ModeAuto && parsed.IsEmpty() {
		return Reply{Text: helpMessage(parsed.Mode), Source: SourceHelp, Mode: parsed.Mode}
	}

	if parsed.Mode != ModeAIOnly {
		if m, ok := r.matcher.FindBestMatch(parsed.Clean, r.threshold); ok && m.Answer != "" {
			r.log("FAQ match", map[string]interface{}{"question": m.Question, "score": m.Score})
			return Reply{
				Text:     FormatFAQMatch(m.Question, m.Answer),
				Source:   SourceFAQ,
				Mode:     parsed.Mode,
				Question: m.Question,
				Score:    m.Score,
			}
		}
	}

	if parsed.Mode == ModeFAQOnly {
		return Reply{Text: NoFAQMatchMessage, Source: SourceFAQ, Mode: parsed.Mode}
	}

	r.log("Delegating to generator", map[string]interface{}{"query": truncateLog(parsed.Clean, 50)})
	res := r.generator.Generate(ctx, parsed.Clean)
	return Reply{Text: res.String(), Source: SourceAI, Mode: parsed.Mode, Result: res}
}

// ProcessQuery returns only the text to display.
func (r *QueryRouter) ProcessQuery(ctx context.Context, text string) string {
	return r.Process(ctx, text).Text
}

// FormatFAQMatch renders a matched FAQ entry.
func FormatFAQMatch(question, answer string) string {
	return fmt.Sprintf("🔍 **FAQ Match:** *%s*\n\n%s", question, answer)
}

func (r *QueryRouter) log(message string, details map[string]interface{}) {
	if r.logger != nil {
		r.logger.Info("Router", message, details)
	}
}

func helpMessage(mode Mode) string {
	switch mode {
	case ModeAIOnly:
		return "Type your question after /ai to skip the FAQ and ask the assistant directly.\n\nExample: /ai Can you do henna for a group of 10?"
	case ModeFAQOnly:
		return "Type your question after /faq to search the FAQ only.\n\nExample: /faq How long does henna last?"
	default:
		return "Please type your question."
	}
}

// truncateLog truncates string for logging
func truncateLog(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
