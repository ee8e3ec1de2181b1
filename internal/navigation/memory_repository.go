package navigation

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]*Record
}

// NewInMemoryRepository creates a new in-memory navigation repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		nextID:  1,
		records: make(map[int64]*Record),
	}
}

// Create persists a record and returns the assigned identifier.
func (r *InMemoryRepository) Create(_ context.Context, record *Record) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++

	cpy := *record
	cpy.ID = id
	r.records[id] = &cpy

	record.ID = id
	return id, nil
}

// Get retrieves a record by id.
func (r *InMemoryRepository) Get(_ context.Context, id int64) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	// Return a copy
	cpy := *record
	return &cpy, nil
}

// ListByDevice retrieves the most recent records for a device, newest first.
func (r *InMemoryRepository) ListByDevice(_ context.Context, deviceID string, limit int) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	var records []*Record
	for id := r.nextID - 1; id >= 1 && len(records) < limit; id-- {
		record, ok := r.records[id]
		if !ok || record.DeviceID != deviceID {
			continue
		}
		cpy := *record
		records = append(records, &cpy)
	}

	return records, nil
}

// Count returns the number of stored records.
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
