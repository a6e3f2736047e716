package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"henna-assistant-be/pkg/llm"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash-lite"

// Provider opens Gemini chat sessions through the genai SDK.
type Provider struct {
	client *genai.Client
	model  string
}

var _ llm.ChatProvider = &Provider{}

func NewProvider(ctx context.Context, apiKey, model string, httpClient *http.Client) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Provider{client: client, model: model}, nil
}

func (p *Provider) StartChat(ctx context.Context, opts ...llm.Option) (llm.ChatSession, error) {
	options := llm.NewOptions(opts...)

	model := p.model
	if options.Model != "" {
		model = options.Model
	}

	temp := float32(options.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if options.TopP > 0 {
		topP := float32(options.TopP)
		config.TopP = &topP
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}

	chat, err := p.client.Chats.Create(ctx, model, config, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini: start chat: %w", err)
	}
	return &session{chat: chat}, nil
}

type session struct {
	chat *genai.Chat
}

func (s *session) SendMessage(ctx context.Context, prompt string) (*llm.Response, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}
	return toResponse(resp), nil
}

// toResponse flattens the first candidate's text parts; thoughts are skipped.
func toResponse(resp *genai.GenerateContentResponse) *llm.Response {
	out := &llm.Response{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return out
	}

	candidate := resp.Candidates[0]
	out.FinishReason = string(candidate.FinishReason)
	if candidate.Content == nil {
		return out
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	out.Text = b.String()
	return out
}
