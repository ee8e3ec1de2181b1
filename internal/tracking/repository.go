package tracking

import "context"

// Repository defines the interface for GPS fix persistence.
type Repository interface {
	// Create persists a fix and returns the assigned identifier.
	Create(ctx context.Context, point *Point) (int64, error)

	// Latest retrieves the most recent fix for a device.
	// Returns ErrNoFixes if nothing has been recorded.
	Latest(ctx context.Context, deviceID string) (*Point, error)

	// ListByDevice retrieves the most recent fixes for a device in
	// chronological order (oldest first).
	ListByDevice(ctx context.Context, deviceID string, limit int) ([]*Point, error)
}
