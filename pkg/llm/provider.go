package llm

import (
	"context"
	"errors"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithTopP(p float64) Option {
	return func(o *Options) {
		o.TopP = p
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// NewOptions applies opts over the package defaults.
func NewOptions(opts ...Option) *Options {
	o := &Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Response is one generated reply. Text may be empty when the model produced nothing.
type Response struct {
	Text         string
	FinishReason string
}

// ChatSession is a conversation held open with a remote model.
// Implementations are not safe for concurrent use.
type ChatSession interface {
	SendMessage(ctx context.Context, prompt string) (*Response, error)
}

// ChatProvider starts new sessions. Generation options are fixed per session.
type ChatProvider interface {
	StartChat(ctx context.Context, opts ...Option) (ChatSession, error)
}

// LLMProvider defines the contract for stateless backends that take the whole history per call
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

var ErrProviderUnavailable = errors.New("llm provider unavailable")

type unavailable struct {
	err error
}

// Unavailable returns a provider whose sessions can never be started. It lets
// the service boot without credentials and report the cause on each request.
func Unavailable(cause error) ChatProvider {
	if cause == nil {
		cause = ErrProviderUnavailable
	}
	return &unavailable{err: cause}
}

func (u *unavailable) StartChat(ctx context.Context, opts ...Option) (ChatSession, error) {
	return nil, u.err
}
