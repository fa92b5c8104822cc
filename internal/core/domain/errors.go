package domain

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated means no usable session token exists: either the user never
// logged in, or a refresh was rejected and the session was cleared.
var ErrNotAuthenticated = errors.New("domain: not authenticated")

// ErrNoActivePlayback means the provider reports nothing currently playing.
// Callers must surface this distinctly from transport failures.
var ErrNoActivePlayback = errors.New("domain: no active playback")

// ErrNotFound indicates a missing record.
var ErrNotFound = errors.New("domain: not found")

// TransportError wraps a network-level failure (connection, timeout) against an
// external service.
type TransportError struct {
	Service string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s unreachable: %v", e.Service, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RecommendationError wraps a strategy failure so handlers can report which
// variant fell over.
type RecommendationError struct {
	Strategy Strategy
	Err      error
}

func (e *RecommendationError) Error() string {
	return fmt.Sprintf("%s recommendation failed: %v", e.Strategy, e.Err)
}

func (e *RecommendationError) Unwrap() error {
	return e.Err
}
