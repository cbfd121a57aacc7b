package lifecycle

import "errors"

// Typed failures for lifecycle operations. Handlers map these to HTTP
// status codes with errors.Is; nothing is retried at this layer.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrMissingProof      = errors.New("no work proof available to review")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
