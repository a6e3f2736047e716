package factory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"henna-assistant-be/pkg/llm"
	"henna-assistant-be/pkg/llm/anthropic"
	"henna-assistant-be/pkg/llm/gemini"
	"henna-assistant-be/pkg/llm/ollama"
	"henna-assistant-be/pkg/llm/openai"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

var ErrMissingAPIKey = errors.New("api key is not configured")

// Settings selects and configures one chat backend.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string // ollama host or an OpenAI-compatible gateway
}

// NewChatProvider builds the backend named by s.Provider. Stateless backends
// are wrapped so that they keep conversation history client-side.
func NewChatProvider(ctx context.Context, s Settings, httpClient *http.Client) (llm.ChatProvider, error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", ProviderGemini:
		return gemini.NewProvider(ctx, s.APIKey, s.Model, httpClient)
	case ProviderOpenAI:
		if s.APIKey == "" {
			return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
		}
		return llm.WithHistory(openai.NewProvider(s.APIKey, s.Model, s.BaseURL, httpClient)), nil
	case ProviderAnthropic:
		if s.APIKey == "" {
			return nil, fmt.Errorf("anthropic: %w", ErrMissingAPIKey)
		}
		return llm.WithHistory(anthropic.NewProvider(s.APIKey, s.Model, httpClient)), nil
	case ProviderOllama:
		return llm.WithHistory(ollama.NewProvider(s.BaseURL, s.Model, httpClient)), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}

// NewChatProviderOrUnavailable never fails; construction errors are reported
// on every session start instead.
func NewChatProviderOrUnavailable(ctx context.Context, s Settings, httpClient *http.Client) (llm.ChatProvider, error) {
	p, err := NewChatProvider(ctx, s, httpClient)
	if err != nil {
		return llm.Unavailable(err), err
	}
	return p, nil
}
