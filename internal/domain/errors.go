package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrLocationNotFound is returned when geocoding resolves zero matches
	ErrLocationNotFound = errors.New("location not found")

	// ErrMissingCredentials is returned when a required provider credential is absent
	ErrMissingCredentials = errors.New("missing provider credentials")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProviderFailure is returned when an upstream place provider fails
	ErrProviderFailure = errors.New("provider request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// ProviderError carries the upstream failure detail for one provider.
// Message holds a truncated upstream body, never the full response.
type ProviderError struct {
	Source     Source
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// Unwrap lets callers match with errors.Is(err, ErrProviderFailure)
func (e *ProviderError) Unwrap() error {
	return ErrProviderFailure
}
