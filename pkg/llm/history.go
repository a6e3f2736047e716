package llm

import (
	"context"
	"strings"
	"sync"
)

type historyProvider struct {
	backend LLMProvider
}

// WithHistory turns a stateless backend into a ChatProvider by keeping the
// transcript on the client and replaying it on every turn.
func WithHistory(backend LLMProvider) ChatProvider {
	return &historyProvider{backend: backend}
}

func (h *historyProvider) StartChat(ctx context.Context, opts ...Option) (ChatSession, error) {
	return &historySession{backend: h.backend, opts: opts}, nil
}

type historySession struct {
	backend LLMProvider
	opts    []Option

	mu      sync.Mutex
	history []Message
}

func (s *historySession) SendMessage(ctx context.Context, prompt string) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turn := append(append([]Message(nil), s.history...), Message{Role: RoleUser, Content: prompt})
	reply, err := s.backend.Chat(ctx, turn, s.opts...)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(reply) != "" {
		s.history = append(turn, Message{Role: RoleAssistant, Content: reply})
	}
	return &Response{Text: reply}, nil
}

// History returns a copy of the transcript so far.
func (s *historySession) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.history...)
}
