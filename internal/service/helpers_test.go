package service

import (
	"context"
	"sync"
	"time"

	"henna-assistant-be/internal/pkg/logger"
	"henna-assistant-be/internal/repository/memory"
	"henna-assistant-be/pkg/ai/agent"
	"henna-assistant-be/pkg/catalog"
	"henna-assistant-be/pkg/events"
	"henna-assistant-be/pkg/faq"
	"henna-assistant-be/pkg/llm"
	"henna-assistant-be/pkg/store"
)

type scriptedProvider struct {
	mu      sync.Mutex
	replies []string
	starts  int
	prompts []string
}

func (p *scriptedProvider) StartChat(ctx context.Context, opts ...llm.Option) (llm.ChatSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.starts++
	return p, nil
}

func (p *scriptedProvider) SendMessage(ctx context.Context, prompt string) (*llm.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
	if len(p.replies) == 0 {
		return &llm.Response{}, nil
	}
	r := p.replies[0]
	p.replies = p.replies[1:]
	return &llm.Response{Text: r}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(ctx context.Context, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingPublisher) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType())
	}
	return out
}

func faqEntries() []faq.Entry {
	return []faq.Entry{
		{Category: "Pricing", Question: "How much is bridal henna?", Answer: "Starts at 3000 BDT."},
		{Category: "Aftercare", Question: "How long does henna last?", Answer: "Usually one to three weeks."},
		{Category: "Pricing", Question: "Do you offer bridal packages?", Answer: "Yes, see the packages page."},
	}
}

func sixPackages() []catalog.Package {
	return []catalog.Package{
		{Name: "P1", Type: "Casual", Length: "Wrist", Hand: "One", Side: "Front", Price: 500},
		{Name: "P2", Type: "Casual", Length: "Wrist", Hand: "One", Side: "Both", Price: 900},
		{Name: "P3", Type: "Party", Length: "Elbow", Hand: "Both", Side: "Front", Price: 1200},
		{Name: "P4", Type: "Party", Length: "Elbow", Hand: "Both", Side: "Both", Price: 1600},
		{Name: "P5", Type: "Bridal", Length: "Full Arm", Hand: "Both", Side: "Front", Price: 2000},
		{Name: "P6", Type: "Bridal", Length: "Full Arm", Hand: "Both", Side: "Both", Price: 2500},
	}
}

type fixture struct {
	provider  *scriptedProvider
	repo      *memory.SessionRepository
	publisher *recordingPublisher
	log       logger.ILogger
}

func newFixture(packages []catalog.Package, replies ...string) *fixture {
	f := &fixture{
		provider:  &scriptedProvider{replies: replies},
		publisher: &recordingPublisher{},
		log:       logger.NewNopLogger(),
	}
	cat := catalog.New(packages)
	f.repo = memory.NewSessionRepository(time.Hour, func(id string) *store.Session {
		return store.NewSession(id, func() *agent.Agent {
			return agent.New(f.provider, agent.Context{FAQ: faqEntries()},
				agent.WithLanguageDetector(func(string) (string, error) { return "en", nil }))
		}, cat)
	})
	return f
}
