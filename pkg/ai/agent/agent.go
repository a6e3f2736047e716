package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"henna-assistant-be/pkg/ai/prompt"
	"henna-assistant-be/pkg/faq"
	"henna-assistant-be/pkg/langdetect"
	"henna-assistant-be/pkg/llm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Generation parameters are fixed at configuration time.
const (
	Temperature     = 0.1
	TopP            = 0.9
	MaxOutputTokens = 1024
)

const (
	FallbackMessage = "🤖 Sorry, I couldn’t generate a response."
	ErrorPrefix     = "⚠️ Error: "
)

// Context is the read-only knowledge embedded in every prompt.
type Context struct {
	FAQ      []faq.Entry
	Personal map[string]interface{}
}

// Logger is the subset of the application logger the agent writes to.
type Logger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}

// DetectFunc reports the language of a text or an error when it cannot tell.
type DetectFunc func(text string) (string, error)

type Option func(*Agent)

func WithLogger(l Logger) Option {
	return func(a *Agent) { a.logger = l }
}

func WithPromptBuilder(b *prompt.Builder) Option {
	return func(a *Agent) { a.builder = b }
}

func WithLanguageDetector(fn DetectFunc) Option {
	return func(a *Agent) { a.detect = fn }
}

// WithTimeout bounds a whole Generate call, retry included. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(a *Agent) { a.timeout = d }
}

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(a *Agent) { a.model = model }
}

// Agent produces generated replies over a remote chat session it owns.
// Calls on one Agent are serialized.
type Agent struct {
	provider llm.ChatProvider
	context  Context
	builder  *prompt.Builder
	detect   DetectFunc
	logger   Logger
	tracer   trace.Tracer
	timeout  time.Duration
	model    string

	mu       sync.Mutex
	session  llm.ChatSession
	sessions int
}

// New builds an agent and opens its first session. A failure to open it is
// logged; the next Generate retries the open.
func New(provider llm.ChatProvider, knowledge Context, opts ...Option) *Agent {
	a := &Agent{
		provider: provider,
		context:  knowledge,
		detect:   langdetect.Detect,
		logger:   nopLogger{},
		tracer:   otel.Tracer("henna-assistant-be/agent"),
		timeout:  60 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.builder == nil {
		a.builder = prompt.NewBuilder(nil)
	}

	if err := a.Configure(context.Background()); err != nil {
		a.logger.Warn("Agent", "Initial session could not be started", map[string]interface{}{"error": err.Error()})
	}
	return a
}

// Configure replaces the held session with a fresh one.
func (a *Agent) Configure(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.startSession(ctx)
}

// Sessions reports how many remote sessions have been opened so far.
func (a *Agent) Sessions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessions
}

func (a *Agent) startSession(ctx context.Context) error {
	opts := []llm.Option{
		llm.WithTemperature(Temperature),
		llm.WithTopP(TopP),
		llm.WithMaxTokens(MaxOutputTokens),
	}
	if a.model != "" {
		opts = append(opts, llm.WithModel(a.model))
	}

	session, err := a.provider.StartChat(ctx, opts...)
	if err != nil {
		a.session = nil
		return fmt.Errorf("start chat: %w", err)
	}
	a.session = session
	a.sessions++
	a.logger.Info("Agent", "Chat session configured", map[string]interface{}{"sessions": a.sessions})
	return nil
}

// Generate answers input. It never panics and never returns a Go error;
// failures are carried in the Result.
func (a *Agent) Generate(ctx context.Context, input string) (res Result) {
	ctx, span := a.tracer.Start(ctx, "agent.generate")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			res = transportFailure(fmt.Errorf("%v", r))
			a.logger.Error("Agent", "Recovered from panic during generation", map[string]interface{}{"error": res.Err.Error()})
		}
		span.SetAttributes(
			attribute.String("agent.outcome", res.Kind.String()),
			attribute.Int("agent.attempts", res.Attempts),
			attribute.String("agent.language", res.Language),
		)
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
		}
	}()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	lang := a.language(input)
	text := a.builder.Build(a.context.FAQ, a.context.Personal, input, lang)

	if a.session == nil {
		if err := a.startSession(ctx); err != nil {
			return a.fail(transportFailure(err), lang, 0)
		}
	}

	reply, err := a.send(ctx, text)
	if err != nil {
		return a.fail(transportFailure(err), lang, 1)
	}
	if reply != "" {
		return Result{Text: reply, Language: lang, Attempts: 1}
	}

	a.logger.Warn("Agent", "Empty response, retrying with a fresh session", nil)
	if err := a.startSession(ctx); err != nil {
		return a.fail(transportFailure(err), lang, 1)
	}

	reply, err = a.send(ctx, text)
	if err != nil {
		return a.fail(transportFailure(err), lang, 2)
	}
	if reply != "" {
		return Result{Text: reply, Language: lang, Attempts: 2}
	}

	return a.fail(Result{Kind: KindEmptyResponse, Err: ErrEmptyResponse}, lang, 2)
}

// GenerateResponse is Generate rendered for display.
func (a *Agent) GenerateResponse(ctx context.Context, input string) string {
	return a.Generate(ctx, input).String()
}

func (a *Agent) send(ctx context.Context, text string) (string, error) {
	resp, err := a.session.SendMessage(ctx, text)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	return strings.TrimSpace(resp.Text), nil
}

func (a *Agent) language(input string) (lang string) {
	if a.detect == nil {
		return langdetect.Fallback
	}
	defer func() {
		if r := recover(); r != nil {
			lang = langdetect.Fallback
		}
	}()
	lang, err := a.detect(input)
	if err != nil || lang == "" {
		return langdetect.Fallback
	}
	return lang
}

func (a *Agent) fail(res Result, lang string, attempts int) Result {
	res.Language = lang
	res.Attempts = attempts
	level := a.logger.Error
	if res.Kind == KindEmptyResponse {
		level = a.logger.Warn
	}
	level("Agent", "Generation failed", map[string]interface{}{
		"kind":     res.Kind.String(),
		"error":    res.Err.Error(),
		"attempts": attempts,
	})
	return res
}

var ErrEmptyResponse = errors.New("empty response from generation service")

type nopLogger struct{}

func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
