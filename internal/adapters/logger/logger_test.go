package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"Error", LevelError},
		{"nonsense", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(LevelWarn, &buf)
	ctx := context.Background()

	l.Debug(ctx, "debug message")
	l.Info(ctx, "info message")
	assert.Empty(t, buf.String())

	l.Warn(ctx, "warn message", map[string]interface{}{"symbol": "ETHUSDT"})
	assert.Contains(t, buf.String(), "warn message")
	assert.Contains(t, buf.String(), "symbol=ETHUSDT")
}

func TestLoggerErrorIncludesError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(LevelDebug, &buf)

	l.Error(context.Background(), errors.New("disk full"), "save failed")
	out := buf.String()
	assert.Contains(t, out, "level=error")
	assert.Contains(t, out, "save failed")
	assert.Contains(t, out, "disk full")
}
