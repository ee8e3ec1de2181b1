package tracking

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL tracking repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a fix and returns the assigned identifier.
func (r *PostgresRepository) Create(ctx context.Context, point *Point) (int64, error) {
	query := `
		INSERT INTO gps_points (device_id, lat, lng, heading, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		point.DeviceID,
		point.Lat,
		point.Lng,
		point.Heading,
		point.Timestamp,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	point.ID = id
	return id, nil
}

// Latest retrieves the most recent fix for a device.
func (r *PostgresRepository) Latest(ctx context.Context, deviceID string) (*Point, error) {
	query := `
		SELECT id, device_id, lat, lng, heading, recorded_at
		FROM gps_points
		WHERE device_id = $1
		ORDER BY id DESC
		LIMIT 1
	`

	var point Point
	err := r.pool.QueryRow(ctx, query, deviceID).Scan(
		&point.ID,
		&point.DeviceID,
		&point.Lat,
		&point.Lng,
		&point.Heading,
		&point.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoFixes
		}
		return nil, err
	}

	return &point, nil
}

// ListByDevice retrieves the most recent fixes for a device, oldest first.
func (r *PostgresRepository) ListByDevice(ctx context.Context, deviceID string, limit int) ([]*Point, error) {
	if limit <= 0 {
		limit = 500
	}

	// Fetch the newest fixes, then return them in chronological order.
	query := `
		SELECT id, device_id, lat, lng, heading, recorded_at
		FROM (
			SELECT id, device_id, lat, lng, heading, recorded_at
			FROM gps_points
			WHERE device_id = $1
			ORDER BY id DESC
			LIMIT $2
		) recent
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, deviceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []*Point
	for rows.Next() {
		var point Point
		err := rows.Scan(
			&point.ID,
			&point.DeviceID,
			&point.Lat,
			&point.Lng,
			&point.Heading,
			&point.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		points = append(points, &point)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
