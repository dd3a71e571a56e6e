package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crosswatch-systems/crosswatch/internal/middleware"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	assert.NotNil(t, New(slog.LevelInfo, "json"))
	assert.NotNil(t, New(slog.LevelDebug, "text"))
}

func TestWithContext(t *testing.T) {
	logger := New(slog.LevelInfo, "json")

	plain := logger.WithContext(context.Background())
	assert.NotNil(t, plain)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-123")
	withID := logger.WithContext(ctx)
	assert.NotNil(t, withID)
	// Different logger instance carrying the request_id attribute.
	assert.NotEqual(t, plain, withID)
}
