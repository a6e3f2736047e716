package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"henna-assistant-be/internal/bootstrap"
	"henna-assistant-be/internal/config"
	"henna-assistant-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerRoutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o600))
	cfg := &config.Config{
		App: config.AppConfig{KnowledgeFile: path, SessionTTL: time.Hour, CorsAllowedOrigins: "http://localhost:5173"},
		Ai:  config.AIConfig{LLMProvider: "gemini", RequestTimeout: time.Second},
	}
	log := logger.NewNopLogger()

	container, err := bootstrap.NewContainer(context.Background(), cfg, log)
	require.NoError(t, err)
	defer container.Close()

	app := New(cfg, container, log).GetApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])

	resp, err = app.Test(httptest.NewRequest("GET", "/api/faq/v1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/packages/v1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Session-Id"))

	resp, err = app.Test(httptest.NewRequest("GET", "/api/chat/v1/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, 426, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "go_goroutines")
	assert.Contains(t, string(raw), "henna_active_sessions 1")
}
