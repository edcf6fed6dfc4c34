package stages

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/jonathan/resume-as-code/internal/llm"
)

// TransientError is a capability timeout or unavailability. The executor retries it.
type TransientError struct {
	Stage string
	Cause error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("stage %s: transient failure: %v", e.Stage, e.Cause)
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

// StructuralError is a response that is not valid JSON or does not match the stage schema.
// The executor retries it like a TransientError.
type StructuralError struct {
	Stage string
	Raw   string
	Cause error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("stage %s: malformed response: %v", e.Stage, e.Cause)
}

func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// FatalError ends the run. It is returned when retries are exhausted or the failure
// cannot be fixed by retrying.
type FatalError struct {
	Stage string
	Tries int
	Cause error
}

func (e *FatalError) Error() string {
	if e.Tries > 1 {
		return fmt.Sprintf("stage %s failed after %d tries: %v", e.Stage, e.Tries, e.Cause)
	}
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Cause)
}

func (e *FatalError) Unwrap() error {
	return e.Cause
}

// IsFatal reports whether err is or wraps a FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// IsTransient classifies capability errors that are worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var te *TransientError
	if errors.As(err, &te) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	// An unreachable capability is unavailable, not broken.
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "unavailable") ||
		strings.Contains(msg, "connection reset")
}

// isStructural reports errors that mean the model answered but the answer was unusable.
func isStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se) || errors.Is(err, llm.ErrEmptyResponse)
}
