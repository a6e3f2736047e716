package logger

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &ZapLogger{logger: zap.New(core)}, logs
}

func TestZapLogger_Fields(t *testing.T) {
	l, logs := observed()

	l.Info("Agent", "Generated reply", map[string]interface{}{"attempts": 1})
	l.Warn("Config", "Knowledge file missing", nil)
	l.Error("Agent", "Generation failed", map[string]interface{}{"error": "timeout"})

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "Generated reply", entries[0].Message)
	assert.Equal(t, "Agent", entries[0].ContextMap()["module"])
	assert.Equal(t, map[string]interface{}{}, entries[1].ContextMap()["details"])
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "timeout", entries[2].ContextMap()["error_ref"])
}

func TestNewIsolatedLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.log")
	l := NewIsolatedLogger(path)
	l.Info("Hub", "Client registered", nil)
	_ = l.Sync()

	assert.FileExists(t, path)
}

func TestWatermillAdapter(t *testing.T) {
	l, logs := observed()
	adapter := NewWatermillAdapter(l, "EventBus").With(watermill.LogFields{"topic": "chat"})

	adapter.Info("subscribed", watermill.LogFields{"subscriber": 1})
	adapter.Error("publish failed", errors.New("closed"), nil)
	adapter.Trace("noise", nil)

	entries := logs.All()
	require.Len(t, entries, 3)

	details := entries[0].ContextMap()["details"].(map[string]interface{})
	assert.Equal(t, "chat", details["topic"])
	assert.EqualValues(t, 1, details["subscriber"])
	assert.Equal(t, "EventBus", entries[1].ContextMap()["module"])
	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
}

type otherLogger struct{ ILogger }

func TestZapOf(t *testing.T) {
	l, _ := observed()
	assert.Same(t, l.Zap(), ZapOf(l))
	assert.Nil(t, ZapOf(otherLogger{}))
}
