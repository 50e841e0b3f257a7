package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("test message", "key", "value")
	l.Info("test message", "key", "value")
	l.Warn("test message", "key", "value")
	l.Error("test message", "key", "value")

	_, ok := l.With("key", "value").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	newAdapter := func(level slog.Level) (*SlogAdapter, *bytes.Buffer) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
		return NewSlogAdapter(slog.New(handler)), &buf
	}

	t.Run("nil uses default", func(t *testing.T) {
		assert.NotNil(t, NewSlogAdapter(nil).logger)
	})

	tests := []struct {
		name  string
		log   func(Logger)
		level string
	}{
		{"debug", func(l Logger) { l.Debug("msg", "foo", "bar") }, "level=DEBUG"},
		{"info", func(l Logger) { l.Info("msg", "foo", "bar") }, "level=INFO"},
		{"warn", func(l Logger) { l.Warn("msg", "foo", "bar") }, "level=WARN"},
		{"error", func(l Logger) { l.Error("msg", "foo", "bar") }, "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, buf := newAdapter(slog.LevelDebug)
			tt.log(adapter)
			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), "foo=bar")
		})
	}

	t.Run("level filtering", func(t *testing.T) {
		adapter, buf := newAdapter(slog.LevelWarn)
		adapter.Debug("hidden")
		adapter.Info("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("With prepends attributes", func(t *testing.T) {
		adapter, buf := newAdapter(slog.LevelInfo)
		adapter.With("operation", "getPets").Info("emitted")
		assert.Contains(t, buf.String(), "operation=getPets")
		assert.Contains(t, buf.String(), "emitted")
	})
}
