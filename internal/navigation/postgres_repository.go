package navigation

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

// NewPostgresRepository creates a new PostgreSQL navigation repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a record and returns the assigned identifier.
func (r *PostgresRepository) Create(ctx context.Context, record *Record) (int64, error) {
	query := `
		INSERT INTO navigation_requests (
			device_id, origin_lat, origin_lng, heading,
			transcript, detected_language, translated_text,
			destination_place, destination_lat, destination_lng,
			distance_text, duration_text, overview_polyline,
			audio_path, success, error_text, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		record.DeviceID,
		record.OriginLat,
		record.OriginLng,
		record.Heading,
		record.Transcript,
		record.DetectedLanguage,
		record.TranslatedText,
		record.DestinationPlace,
		record.DestinationLat,
		record.DestinationLng,
		record.DistanceText,
		record.DurationText,
		record.OverviewPolyline,
		record.AudioPath,
		record.Success,
		record.ErrorText,
		record.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	record.ID = id
	return id, nil
}

// Get retrieves a record by id.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Record, error) {
	query := `
		SELECT
			id, device_id, origin_lat, origin_lng, heading,
			transcript, detected_language, translated_text,
			destination_place, destination_lat, destination_lng,
			distance_text, duration_text, overview_polyline,
			audio_path, success, error_text, created_at
		FROM navigation_requests
		WHERE id = $1
	`

	record, err := r.scanRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return record, nil
}

// ListByDevice retrieves the most recent records for a device, newest first.
func (r *PostgresRepository) ListByDevice(ctx context.Context, deviceID string, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			id, device_id, origin_lat, origin_lng, heading,
			transcript, detected_language, translated_text,
			destination_place, destination_lat, destination_lng,
			distance_text, duration_text, overview_polyline,
			audio_path, success, error_text, created_at
		FROM navigation_requests
		WHERE device_id = $1
		ORDER BY id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, deviceID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// scanRecord scans a record from a query result row.
func (r *PostgresRepository) scanRecord(row pgx.Row) (*Record, error) {
	var record Record

	err := row.Scan(
		&record.ID,
		&record.DeviceID,
		&record.OriginLat,
		&record.OriginLng,
		&record.Heading,
		&record.Transcript,
		&record.DetectedLanguage,
		&record.TranslatedText,
		&record.DestinationPlace,
		&record.DestinationLat,
		&record.DestinationLng,
		&record.DistanceText,
		&record.DurationText,
		&record.OverviewPolyline,
		&record.AudioPath,
		&record.Success,
		&record.ErrorText,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
