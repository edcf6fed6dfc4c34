package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected zapcore.Level
		wantErr  bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestNew_JSONOutputWithContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	ctx := WithProfile(WithRunID(context.Background(), "run-123"), "senior-sre")
	logger.Info(ctx, "stage finished", zap.String("stage", "draft"))

	out := buf.String()
	assert.Contains(t, out, `"msg":"stage finished"`)
	assert.Contains(t, out, `"run.id":"run-123"`)
	assert.Contains(t, out, `"profile":"senior-sre"`)
	assert.Contains(t, out, `"stage":"draft"`)
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.Info(context.Background(), "hidden")
	logger.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.False(t, logger.Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestTestLogger(t *testing.T) {
	logger := NewTestLogger()
	ctx := WithRunID(context.Background(), "abc")

	logger.Named("pipeline").With(zap.Int("attempt", 2)).Warn(ctx, "draft rejected")

	logger.AssertLogged(t, zapcore.WarnLevel, "rejected")
	logger.AssertField(t, "draft rejected", "run.id", "abc")
	logger.AssertField(t, "draft rejected", "attempt", int64(2))
	assert.Equal(t, 1, logger.FilterMessage("draft").Len())
}

func TestContextFields_Empty(t *testing.T) {
	assert.Empty(t, ContextFields(context.Background()))
	assert.Equal(t, "", RunIDFromContext(context.Background()))
}
