package navigation

import "context"

// Repository defines the interface for navigation record persistence.
type Repository interface {
	// Create persists a record and returns the identifier assigned by the
	// store. Identifiers increase monotonically and serve as the
	// external-facing request id.
	Create(ctx context.Context, record *Record) (int64, error)

	// Get retrieves a record by id.
	// Returns ErrRecordNotFound if no such record exists.
	Get(ctx context.Context, id int64) (*Record, error)

	// ListByDevice retrieves the most recent records for a device, newest
	// first.
	ListByDevice(ctx context.Context, deviceID string, limit int) ([]*Record, error)
}
