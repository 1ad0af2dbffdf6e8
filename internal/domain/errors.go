package domain

import "errors"

var (
	// ErrMalformedRequest marks input that cannot be processed at all, as
	// opposed to a numeral that is merely invalid for its radix.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrModelNotConfigured is returned when a model name cannot be resolved.
	ErrModelNotConfigured = errors.New("model not configured")

	// ErrProviderUnavailable is returned when no provider could serve a request.
	ErrProviderUnavailable = errors.New("content provider unavailable")
)
