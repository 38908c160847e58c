package domain

import "errors"

// Error taxonomy shared across services. Handlers map these to HTTP status
// codes; everything else bubbles up as an internal error.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream failure")
)
