package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"henna-assistant-be/internal/dto"
	"henna-assistant-be/internal/pkg/logger"
	"henna-assistant-be/internal/pkg/serverutils"
	"henna-assistant-be/internal/repository/memory"
	"henna-assistant-be/internal/service"
	"henna-assistant-be/pkg/ai/agent"
	"henna-assistant-be/pkg/catalog"
	"henna-assistant-be/pkg/events"
	"henna-assistant-be/pkg/faq"
	"henna-assistant-be/pkg/llm"
	"henna-assistant-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, events.Event) {}

func newTestApp(t *testing.T, provider llm.ChatProvider) *fiber.App {
	t.Helper()
	log := logger.NewNopLogger()

	entries := []faq.Entry{
		{Category: "Pricing", Question: "How much is bridal henna?", Answer: "Starts at 3000 BDT."},
		{Category: "Aftercare", Question: "How long does henna last?", Answer: "Usually one to three weeks."},
	}
	pkgs := []catalog.Package{
		{Name: "P1", Type: "Casual", Length: "Wrist", Hand: "One", Side: "Front", Price: 500},
		{Name: "P2", Type: "Casual", Length: "Wrist", Hand: "One", Side: "Both", Price: 900},
		{Name: "P3", Type: "Party", Length: "Elbow", Hand: "Both", Side: "Front", Price: 1200},
		{Name: "P4", Type: "Party", Length: "Elbow", Hand: "Both", Side: "Both", Price: 1600},
		{Name: "P5", Type: "Bridal", Length: "Full Arm", Hand: "Both", Side: "Front", Price: 2000},
		{Name: "P6", Type: "Bridal", Length: "Full Arm", Hand: "Both", Side: "Both", Price: 2500},
	}
	cat := catalog.New(pkgs)
	matcher := faq.NewMatcher(entries)

	repo := memory.NewSessionRepository(time.Hour, func(id string) *store.Session {
		return store.NewSession(id, func() *agent.Agent {
			return agent.New(provider, agent.Context{FAQ: entries},
				agent.WithLanguageDetector(func(string) (string, error) { return "en", nil }))
		}, cat)
	})
	registry := prometheus.NewRegistry()
	stats := service.NewStatsService(registry, repo.Count)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewChatbotController(service.NewChatbotService(repo, matcher, nopPublisher{}, log), nil).RegisterRoutes(api)
	NewPackageController(service.NewPackageService(repo, cat, nopPublisher{}, log)).RegisterRoutes(api)
	NewFAQController(service.NewFAQService(matcher)).RegisterRoutes(api)
	NewStatsController(stats).RegisterRoutes(api)
	NewMetricsController(registry, log).RegisterRoutes(app)
	return app
}

type echoProvider struct{}

func (echoProvider) StartChat(ctx context.Context, opts ...llm.Option) (llm.ChatSession, error) {
	return echoProvider{}, nil
}

func (echoProvider) SendMessage(ctx context.Context, prompt string) (*llm.Response, error) {
	return &llm.Response{Text: "Happy to help with that!"}, nil
}

func do(t *testing.T, app *fiber.App, method, target, session, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(serverutils.SessionHeader, session)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) serverutils.BaseResponse[T] {
	t.Helper()
	var out serverutils.BaseResponse[T]
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestChatEndpoints(t *testing.T) {
	app := newTestApp(t, echoProvider{})
	session := uuid.NewString()

	resp, raw := do(t, app, "POST", "/api/chat/v1", session, `{"chat":"how much does bridal henna cost"}`)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, session, resp.Header.Get(serverutils.SessionHeader))
	faqReply := decode[dto.SendChatResponse](t, raw)
	assert.True(t, faqReply.Success)
	assert.Equal(t, "faq", faqReply.Data.Source)
	assert.Contains(t, faqReply.Data.Reply.Chat, "Starts at 3000 BDT.")

	_, raw = do(t, app, "POST", "/api/chat/v1", session, `{"chat":"can you come to my house on friday"}`)
	aiReply := decode[dto.SendChatResponse](t, raw)
	assert.Equal(t, "ai", aiReply.Data.Source)
	assert.Equal(t, "Happy to help with that!", aiReply.Data.Reply.Chat)

	_, raw = do(t, app, "GET", "/api/chat/v1/history", session, "")
	hist := decode[dto.GetChatHistoryResponse](t, raw)
	assert.Len(t, hist.Data.Turns, 4)

	_, raw = do(t, app, "POST", "/api/chat/v1/reset", session, "")
	reset := decode[dto.ResetSessionResponse](t, raw)
	assert.True(t, reset.Data.Configured)

	_, raw = do(t, app, "GET", "/api/chat/v1/history", session, "")
	hist = decode[dto.GetChatHistoryResponse](t, raw)
	assert.Empty(t, hist.Data.Turns)
}

func TestChatEndpoints_Validation(t *testing.T) {
	app := newTestApp(t, echoProvider{})

	resp, _ := do(t, app, "POST", "/api/chat/v1", "", `{"chat":""}`)
	assert.Equal(t, 400, resp.StatusCode)

	resp, _ = do(t, app, "POST", "/api/chat/v1", "", `not json`)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestChatEndpoints_ProviderUnavailable(t *testing.T) {
	app := newTestApp(t, llm.Unavailable(errors.New("api key is not configured")))

	resp, raw := do(t, app, "POST", "/api/chat/v1", uuid.NewString(), `{"chat":"can you come to my house on friday"}`)
	require.Equal(t, 200, resp.StatusCode)
	out := decode[dto.SendChatResponse](t, raw)
	assert.Equal(t, "⚠️ Error: start chat: api key is not configured", out.Data.Reply.Chat)
	assert.Equal(t, "transport_error", out.Data.Outcome)
}

func TestPackageEndpoints(t *testing.T) {
	app := newTestApp(t, echoProvider{})
	session := uuid.NewString()

	_, raw := do(t, app, "GET", "/api/packages/v1", session, "")
	first := decode[dto.GetPackagesResponse](t, raw)
	assert.Equal(t, 6, first.Data.Total)
	assert.Equal(t, 4, first.Data.Shown)
	assert.True(t, first.Data.HasMore)

	_, raw = do(t, app, "POST", "/api/packages/v1/show-more", session, "")
	more := decode[dto.GetPackagesResponse](t, raw)
	assert.Equal(t, 6, more.Data.Shown)
	assert.False(t, more.Data.HasMore)

	_, raw = do(t, app, "GET", "/api/packages/v1?type=Party&max_price=1300", session, "")
	party := decode[dto.GetPackagesResponse](t, raw)
	assert.Equal(t, 1, party.Data.Total)
	assert.Equal(t, "Party", party.Data.Selection.Type)
	assert.Equal(t, 1300.0, party.Data.Selection.MaxPrice)

	resp, _ := do(t, app, "GET", "/api/packages/v1?max_price=-5", session, "")
	assert.Equal(t, 400, resp.StatusCode)
}

func TestFAQEndpoints(t *testing.T) {
	app := newTestApp(t, echoProvider{})

	_, raw := do(t, app, "GET", "/api/faq/v1", "", "")
	all := decode[dto.GetFAQsResponse](t, raw)
	assert.True(t, all.Data.Available)
	require.Len(t, all.Data.Groups, 2)
	assert.Equal(t, "Aftercare", all.Data.Groups[0].Category)

	_, raw = do(t, app, "GET", "/api/faq/v1/match?q=how+long+does+henna+last", "", "")
	match := decode[dto.MatchFAQResponse](t, raw)
	assert.True(t, match.Data.Matched)
	assert.Equal(t, "Usually one to three weeks.", match.Data.Answer)

	resp, _ := do(t, app, "GET", "/api/faq/v1/match", "", "")
	assert.Equal(t, 400, resp.StatusCode)

	resp, _ = do(t, app, "GET", "/api/faq/v1/match?q=x&threshold=2", "", "")
	assert.Equal(t, 400, resp.StatusCode)
}

func TestStatsEndpoint(t *testing.T) {
	app := newTestApp(t, echoProvider{})
	do(t, app, "GET", "/api/packages/v1", uuid.NewString(), "")

	_, raw := do(t, app, "GET", "/api/stats/v1", "", "")
	stats := decode[dto.StatsResponse](t, raw)
	assert.True(t, stats.Success)
	assert.Equal(t, 1, stats.Data.ActiveSessions)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, echoProvider{})
	do(t, app, "GET", "/api/packages/v1", uuid.NewString(), "")

	resp, raw := do(t, app, "GET", "/metrics", "", "")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	body := string(raw)
	assert.Contains(t, body, "henna_active_sessions 1")
	assert.Contains(t, body, "# TYPE henna_chat_answers_total counter")
}
