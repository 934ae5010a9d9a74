package errs

import "fmt"

// NetworkError is a transport-level failure: no response was received.
// Retryable at the caller's discretion; never auto-retried.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Cause) }
func (e *NetworkError) Unwrap() error { return e.Cause }

// ProtocolError is a received response whose body is not valid JSON.
type ProtocolError struct {
	StatusCode int
	Cause      error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: status %d: %v", e.StatusCode, e.Cause)
}
func (e *ProtocolError) Unwrap() error { return e.Cause }

// APIError is a well-formed non-2xx JSON error response. Message is the
// server-supplied "error" field when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// Is maps common statuses onto sentinels so callers can match with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == 404
	case ErrForbidden:
		return e.StatusCode == 403
	case ErrAlreadyExists:
		return e.StatusCode == 409
	}
	return false
}

// ValidationError is a client-local form check that failed before any network
// call was attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for a field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
