package profile

import "fmt"

// LoadError represents a profile file that is missing or unreadable
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// NotFoundError is returned for a profile directory that does not exist
type NotFoundError struct {
	Profile string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile not found: %s", e.Profile)
}
