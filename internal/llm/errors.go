package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyResponse is returned when the model answered without usable text.
var ErrEmptyResponse = errors.New("empty model response")

// APIError is a provider failure with the HTTP status it maps to.
type APIError struct {
	Provider   Provider
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Temporary reports whether retrying the same request may succeed.
func (e *APIError) Temporary() bool {
	switch {
	case e.StatusCode == http.StatusRequestTimeout,
		e.StatusCode == http.StatusTooManyRequests,
		e.StatusCode >= 500:
		return true
	default:
		return false
	}
}

// statusMessage renders a short reason for common provider statuses.
func statusMessage(code int, model string, cause error) string {
	switch code {
	case http.StatusUnauthorized:
		return "invalid API key"
	case http.StatusForbidden:
		return fmt.Sprintf("key does not have access to model %q", model)
	case http.StatusNotFound:
		return fmt.Sprintf("model %q not found", model)
	case http.StatusTooManyRequests:
		return fmt.Sprintf("rate limit exceeded for model %q", model)
	case 529, http.StatusServiceUnavailable:
		return "service overloaded"
	default:
		if cause != nil {
			return cause.Error()
		}
		return http.StatusText(code)
	}
}
