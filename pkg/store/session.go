package store

import (
	"context"
	"sync"
	"time"

	"henna-assistant-be/pkg/ai/agent"
	"henna-assistant-be/pkg/catalog"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one displayed message of a conversation.
type ChatTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Source    string    `json:"source,omitempty"` // "faq" or "ai" for assistant turns
	CreatedAt time.Time `json:"created_at"`
}

// AgentFactory builds the agent of a session on its first chat turn.
type AgentFactory func() *agent.Agent

// Session represents the active user session state in memory.
// Callers hold the embedded mutex for the whole of a chat turn or filter update.
type Session struct {
	sync.Mutex

	ID string `json:"id"`

	// Conversation
	History  []ChatTurn `json:"history"`
	agent    *agent.Agent
	newAgent AgentFactory

	// Package browsing
	Filter    *catalog.Filter   `json:"-"`
	Paginator catalog.Paginator `json:"-"`

	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// NewSession holds no remote chat until Agent is first called, so browsing
// packages or history never opens one. newAgent may be nil for sessions that
// never chat.
func NewSession(id string, newAgent AgentFactory, cat *catalog.Catalog) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		newAgent:   newAgent,
		Filter:     catalog.NewFilter(cat),
		CreatedAt:  now,
		LastActive: now,
	}
}

// Agent returns the session's agent, building it on first use. Callers hold the lock.
func (s *Session) Agent() *agent.Agent {
	if s.agent == nil && s.newAgent != nil {
		s.agent = s.newAgent()
	}
	return s.agent
}

// HasAgent reports whether the agent has been built yet.
func (s *Session) HasAgent() bool {
	return s.agent != nil
}

// Append records a turn and returns it.
func (s *Session) Append(role, content, source string) ChatTurn {
	turn := ChatTurn{Role: role, Content: content, Source: source, CreatedAt: time.Now()}
	s.History = append(s.History, turn)
	s.LastActive = turn.CreatedAt
	return turn
}

// Turns returns a copy of the history in display order.
func (s *Session) Turns() []ChatTurn {
	out := make([]ChatTurn, len(s.History))
	copy(out, s.History)
	return out
}

// Reset starts the conversation over: history is cleared and an existing
// agent gets a fresh remote session. Package browsing state is kept.
func (s *Session) Reset(ctx context.Context) error {
	s.History = nil
	s.LastActive = time.Now()
	if s.agent == nil {
		return nil
	}
	return s.agent.Configure(ctx)
}
