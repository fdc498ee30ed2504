package model

import "errors"

// Sentinel errors for the matching engine. Callers check them with errors.Is,
// the operation context is added at the call site via helper.NewError.
var (
	// ErrNotFound is returned when a profile id or email does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for invalid caller input, e.g. weights not
	// summing to 1.0 or a negative limit.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfiguration is returned when the embedding model cannot be loaded.
	// It is fatal at startup, never per-request.
	ErrConfiguration = errors.New("configuration error")
)
