// Package geocoding resolves free-form place descriptions to coordinates.
package geocoding

import (
	"context"
	"errors"
)

// Sentinel errors for geocoding operations.
var (
	// ErrNotFound indicates no place matched the query.
	ErrNotFound = errors.New("no matching place found")
	// ErrProviderUnavailable indicates the geocoding provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
	// ErrRateLimitExceeded indicates the API quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// Geocoder defines the interface for geocoding providers.
type Geocoder interface {
	// Geocode resolves a place description to a point and canonical address.
	// Returns ErrNotFound when nothing matched.
	Geocode(ctx context.Context, query string) (*Place, error)
	// Name returns the provider identifier for logging and health reporting.
	Name() string
}

// Place is a resolved geographic place.
type Place struct {
	Lat     float64
	Lon     float64
	Address string // Canonical address or label
}
