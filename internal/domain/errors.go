package domain

import "errors"

// Error kinds surfaced by the core. Components wrap these with %w and
// context; callers branch with errors.Is and decide presentation/exit
// status at the outermost layer.
var (
	// ErrMalformedTimestamp means a wire timestamp did not match the
	// fixed UTC format. Indicates upstream format drift; never retried.
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrUserNotFound means a user lookup produced no match.
	ErrUserNotFound = errors.New("user not found")

	// ErrUpstreamUnavailable means a transient transport condition
	// outlived the API client's retry budget.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrInvalidRequest means the upstream rejected a request as
	// malformed or conflicting (4xx other than auth/missing).
	ErrInvalidRequest = errors.New("invalid request")

	// ErrForbidden means the token lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the addressed resource does not exist upstream.
	ErrNotFound = errors.New("not found")
)
