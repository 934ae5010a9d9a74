// Package errs contains sentinel errors and typed failures used across layers
// for stable error mapping.
package errs

import "errors"

// Common sentinels across client/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAuthenticationRequired indicates the server rejected the bearer
	// credential (401-class response). The session is torn down before this
	// error reaches the caller.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrForbidden indicates the authenticated principal lacks the role
	// required for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrSessionAnonymous indicates an operation that needs an authenticated
	// session was attempted without one.
	ErrSessionAnonymous = errors.New("session anonymous")

	// ErrSuperseded indicates an in-flight response arrived after a later
	// session operation settled; its result was discarded.
	ErrSuperseded = errors.New("superseded by a later session operation")
)
