package router

import (
	"context"
	"errors"
	"testing"

	"henna-assistant-be/pkg/ai/agent"
	"henna-assistant-be/pkg/faq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	result agent.Result
	inputs []string
}

func (g *fakeGenerator) Generate(ctx context.Context, input string) agent.Result {
	g.inputs = append(g.inputs, input)
	return g.result
}

func entries() []faq.Entry {
	return []faq.Entry{
		{Category: "Pricing", Question: "How much is bridal henna?", Answer: "Starts at 3000 BDT."},
		{Category: "Products", Question: "Do you use organic henna?", Answer: "Yes, always 100% organic."},
		{Category: "Aftercare", Question: "How long does henna last?", Answer: "Usually one to three weeks."},
		{Category: "General", Question: "Where are you located?", Answer: ""},
	}
}

func TestProcess_FAQMatchSkipsGenerator(t *testing.T) {
	gen := &fakeGenerator{result: agent.Result{Text: "generated"}}
	r := NewQueryRouter(faq.NewMatcher(entries()), gen, nil)

	reply := r.Process(context.Background(), "how much does bridal henna cost")

	assert.Equal(t, SourceFAQ, reply.Source)
	assert.Equal(t, "How much is bridal henna?", reply.Question)
	assert.GreaterOrEqual(t, reply.Score, faq.DefaultThreshold)
	assert.Contains(t, reply.Text, "FAQ Match")
	assert.Contains(t, reply.Text, "Starts at 3000 BDT.")
	assert.Empty(t, gen.inputs)
}

func TestProcess_NoMatchDelegates(t *testing.T) {
	gen := &fakeGenerator{result: agent.Result{Text: "Mars has no henna studios yet."}}
	r := NewQueryRouter(faq.NewMatcher(entries()), gen, nil)

	got := r.ProcessQuery(context.Background(), "what is the weather on mars")

	assert.Equal(t, "Mars has no henna studios yet.", got)
	require.Len(t, gen.inputs, 1)
	assert.Equal(t, "what is the weather on mars", gen.inputs[0])
}

func TestProcess_EmptyAnswerFallsThrough(t *testing.T) {
	gen := &fakeGenerator{result: agent.Result{Text: "We are in Dhaka."}}
	r := NewQueryRouter(faq.NewMatcher(entries()), gen, nil)

	reply := r.Process(context.Background(), "Where are you located?")

	assert.Equal(t, SourceAI, reply.Source)
	assert.Equal(t, "We are in Dhaka.", reply.Text)
}

func TestProcess_GeneratorFailuresAreRendered(t *testing.T) {
	gen := &fakeGenerator{result: agent.Result{Kind: agent.KindTransport, Err: errors.New("quota exceeded")}}
	r := NewQueryRouter(faq.NewMatcher(nil), gen, nil)

	reply := r.Process(context.Background(), "anything")
	assert.Equal(t, "⚠️ Error: quota exceeded", reply.Text)
	assert.Equal(t, agent.KindTransport, reply.Result.Kind)

	gen.result = agent.Result{Kind: agent.KindEmptyResponse}
	assert.Equal(t, agent.FallbackMessage, r.ProcessQuery(context.Background(), "anything"))
}

func TestProcess_Directives(t *testing.T) {
	gen := &fakeGenerator{result: agent.Result{Text: "generated"}}
	r := NewQueryRouter(faq.NewMatcher(entries()), gen, nil)
	ctx := context.Background()

	reply := r.Process(ctx, "/ai how much is bridal henna?")
	assert.Equal(t, SourceAI, reply.Source)
	assert.Equal(t, ModeAIOnly, reply.Mode)
	assert.Equal(t, []string{"how much is bridal henna?"}, gen.inputs)

	reply = r.Process(ctx, "/faq how long does henna last")
	assert.Equal(t, SourceFAQ, reply.Source)
	assert.Contains(t, reply.Text, "Usually one to three weeks.")

	reply = r.Process(ctx, "/FAQ what is the weather on mars")
	assert.Equal(t, NoFAQMatchMessage, reply.Text)
	assert.Len(t, gen.inputs, 1)

	reply = r.Process(ctx, "/ai")
	assert.Equal(t, SourceHelp, reply.Source)
	assert.Len(t, gen.inputs, 1)
}

func TestWithThreshold(t *testing.T) {
	gen := &fakeGenerator{result: agent.Result{Text: "generated"}}
	r := NewQueryRouter(faq.NewMatcher(entries()), gen, nil)

	strict := r.WithThreshold(0.95)
	assert.Equal(t, SourceAI, strict.Process(context.Background(), "how much does bridal henna cost").Source)
	assert.Equal(t, SourceFAQ, r.Process(context.Background(), "how much does bridal henna cost").Source)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		mode  Mode
		clean string
	}{
		{"hello", ModeAuto, "hello"},
		{"/ai tell me more", ModeAIOnly, "tell me more"},
		{"  /faq   price? ", ModeFAQOnly, "price?"},
		{"/aim high", ModeAuto, "/aim high"},
		{"/faq", ModeFAQOnly, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := Parse(tt.in)
			assert.Equal(t, tt.mode, p.Mode)
			assert.Equal(t, tt.clean, p.Clean)
		})
	}
}

func TestFormatFAQMatch(t *testing.T) {
	assert.Equal(t, "🔍 **FAQ Match:** *Q?*\n\nA.", FormatFAQMatch("Q?", "A."))
}

func TestTruncateLog(t *testing.T) {
	assert.Equal(t, "abc", truncateLog("abc", 5))
	assert.Equal(t, "ab...", truncateLog("abcdef", 2))
}
