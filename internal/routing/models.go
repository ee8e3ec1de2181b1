// Package routing provides turn-by-turn pedestrian route computation.
package routing

import (
	"context"
	"errors"
)

// Sentinel errors for routing operations.
var (
	// ErrProviderUnavailable indicates the routing provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	// ErrNoRouteFound indicates no valid walking route exists between the given points.
	ErrNoRouteFound = errors.New("no route found between the given points")
	// ErrRateLimitExceeded indicates the API quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrInvalidCoordinates indicates the provided coordinates are invalid or out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Provider defines the interface for routing providers.
type Provider interface {
	// GetWalkingDirections retrieves a pedestrian route between two points.
	GetWalkingDirections(ctx context.Context, req DirectionsRequest) (*Route, error)
	// Name returns the provider identifier for logging and health reporting.
	Name() string
}

// Coordinate represents a geographic point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// DirectionsRequest is the request for computing a walking route.
type DirectionsRequest struct {
	Origin      Coordinate
	Destination Coordinate
	// Language is the instruction language (default: "en").
	Language string
}

// Route represents a walking route from origin to destination.
// Steps are ordered in traversal order and preserved end-to-end.
type Route struct {
	OverviewPolyline string // Encoded polyline (precision 5)
	DistanceMeters   int    // Total distance in meters
	DurationSeconds  int    // Total duration in seconds
	DistanceText     string // Human-readable total distance ("1.2 km")
	DurationText     string // Human-readable total duration ("15 mins")
	Steps            []Step // Turn-by-turn steps, origin to destination
	BoundingBox      *BoundingBox
}

// Step is a single maneuver in a route.
type Step struct {
	Instruction  string // Spoken-friendly instruction text
	DistanceText string // Human-readable segment distance
	DurationText string // Human-readable segment duration
	Maneuver     string // Maneuver tag ("turn-left"), empty when unknown
}

// BoundingBox represents a geographic bounding box.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// Error provides detailed error information from the routing provider.
type Error struct {
	Provider string // Provider that generated the error
	Code     string // Error code from the provider
	Message  string // Human-readable error message
	Err      error  // Underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is transient and the request can be retried.
func (e *Error) IsRetryable() bool {
	return errors.Is(e.Err, ErrProviderUnavailable) || errors.Is(e.Err, ErrRateLimitExceeded)
}

// ValidateCoordinate checks that a coordinate is within valid ranges.
func ValidateCoordinate(c Coordinate) error {
	if c.Lat < -90 || c.Lat > 90 {
		return ErrInvalidCoordinates
	}
	if c.Lon < -180 || c.Lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
