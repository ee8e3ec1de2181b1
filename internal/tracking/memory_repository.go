package tracking

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	points []*Point
}

// NewInMemoryRepository creates a new in-memory tracking repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

// Create persists a fix and returns the assigned identifier.
func (r *InMemoryRepository) Create(_ context.Context, point *Point) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++

	cpy := *point
	cpy.ID = id
	r.points = append(r.points, &cpy)

	point.ID = id
	return id, nil
}

// Latest retrieves the most recent fix for a device.
func (r *InMemoryRepository) Latest(_ context.Context, deviceID string) (*Point, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.points) - 1; i >= 0; i-- {
		if r.points[i].DeviceID == deviceID {
			cpy := *r.points[i]
			return &cpy, nil
		}
	}

	return nil, ErrNoFixes
}

// ListByDevice retrieves the most recent fixes for a device, oldest first.
func (r *InMemoryRepository) ListByDevice(_ context.Context, deviceID string, limit int) ([]*Point, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 500
	}

	var points []*Point
	for _, p := range r.points {
		if p.DeviceID == deviceID {
			cpy := *p
			points = append(points, &cpy)
		}
	}

	if len(points) > limit {
		points = points[len(points)-limit:]
	}

	return points, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
