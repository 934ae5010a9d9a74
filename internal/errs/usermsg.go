package errs

import "errors"

// UserMessage maps an error from this core onto the line shown to the user:
// the server's message when it sent one, a generic connectivity message for
// transport failures, and the raw validation message for local checks.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var nerr *NetworkError
	if errors.As(err, &nerr) {
		return "Network error. Please check your connection and try again."
	}
	var aerr *APIError
	if errors.As(err, &aerr) {
		return aerr.Message
	}
	if errors.Is(err, ErrAuthenticationRequired) {
		return "Your session has expired. Please log in again."
	}
	return err.Error()
}
