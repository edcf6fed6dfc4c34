package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError_Temporary(t *testing.T) {
	tests := []struct {
		status   int
		expected bool
	}{
		{400, false},
		{401, false},
		{404, false},
		{408, true},
		{429, true},
		{500, true},
		{503, true},
		{529, true},
		{0, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := &APIError{Provider: ProviderGemini, StatusCode: tt.status}
			assert.Equal(t, tt.expected, err.Temporary())
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", &APIError{Provider: ProviderAnthropic, StatusCode: 429, Message: "slow down", Cause: cause})

	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "anthropic API error (status 429): slow down")
}

func TestClassifyErrors_ContextPassThrough(t *testing.T) {
	assert.ErrorIs(t, classifyGeminiError(context.DeadlineExceeded, "m"), context.DeadlineExceeded)
	assert.ErrorIs(t, classifyAnthropicError(context.Canceled, "m"), context.Canceled)
}

func TestClassifyErrors_Unknown(t *testing.T) {
	err := classifyGeminiError(errors.New("socket closed"), "m")
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "socket closed")
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "invalid API key", statusMessage(401, "m", nil))
	assert.Contains(t, statusMessage(404, "gemini-x", nil), "gemini-x")
	assert.Equal(t, "service overloaded", statusMessage(529, "m", nil))
	assert.Equal(t, "Bad Gateway", statusMessage(502, "m", nil))
}
