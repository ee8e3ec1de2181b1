package tracking

import (
	"context"
	"errors"
	"time"

	"github.com/guidecane/guidecane/internal/api/models"
	"github.com/guidecane/guidecane/pkg/polyline"
)

// ErrDeviceIDRequired indicates the request carried no device identifier.
var ErrDeviceIDRequired = errors.New("device id is required")

// DefaultTrackLimit caps the number of fixes rendered in one track.
const DefaultTrackLimit = 500

// Service provides GPS fix storage and track rendering.
type Service struct {
	repo Repository
}

// NewService creates a new tracking service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Ingest validates and stores one device fix.
func (s *Service) Ingest(ctx context.Context, input *models.GPSIngestRequest) (*models.GPSIngestResponse, error) {
	if input.DeviceID == "" {
		return nil, ErrDeviceIDRequired
	}
	if fieldErrors := validateFix(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	point := &Point{
		DeviceID:  input.DeviceID,
		Lat:       input.Lat,
		Lng:       input.Lng,
		Heading:   input.Heading,
		Timestamp: time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, point)
	if err != nil {
		return nil, err
	}

	return &models.GPSIngestResponse{
		ID:        id,
		Timestamp: models.Timestamp(point.Timestamp),
	}, nil
}

// Latest retrieves the most recent fix for a device.
func (s *Service) Latest(ctx context.Context, deviceID string) (*models.GPSPoint, error) {
	point, err := s.repo.Latest(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	result := toAPIPoint(point)
	return &result, nil
}

// Track renders the recorded path for a device: the raw fixes, an encoded
// polyline and the walked distance.
func (s *Service) Track(ctx context.Context, deviceID string, limit int) (*models.GPSTrack, error) {
	if limit <= 0 || limit > DefaultTrackLimit {
		limit = DefaultTrackLimit
	}

	points, err := s.repo.ListByDevice(ctx, deviceID, limit)
	if err != nil {
		return nil, err
	}

	coords := make([]polyline.Coordinate, 0, len(points))
	apiPoints := make([]models.GPSPoint, 0, len(points))
	for _, p := range points {
		coords = append(coords, polyline.Coordinate{Lat: p.Lat, Lng: p.Lng})
		apiPoints = append(apiPoints, toAPIPoint(p))
	}

	return &models.GPSTrack{
		DeviceID:       deviceID,
		Points:         apiPoints,
		Polyline:       polyline.Encode(coords),
		DistanceMeters: polyline.Length(coords),
	}, nil
}

// GeoJSON renders the recorded path as a GeoJSON feature collection: a
// LineString for the track plus a Point for the current position.
func (s *Service) GeoJSON(ctx context.Context, deviceID string, limit int) (*models.GeoJSONFeatureCollection, error) {
	if limit <= 0 || limit > DefaultTrackLimit {
		limit = DefaultTrackLimit
	}

	points, err := s.repo.ListByDevice(ctx, deviceID, limit)
	if err != nil {
		return nil, err
	}

	collection := &models.GeoJSONFeatureCollection{
		Type:     "FeatureCollection",
		Features: []models.GeoJSONFeature{},
	}
	if len(points) == 0 {
		return collection, nil
	}

	// GeoJSON coordinate order is [lng, lat].
	line := make([][]float64, 0, len(points))
	for _, p := range points {
		line = append(line, []float64{p.Lng, p.Lat})
	}

	collection.Features = append(collection.Features, models.GeoJSONFeature{
		Type: "Feature",
		Geometry: models.GeoJSONGeometry{
			Type:        "LineString",
			Coordinates: line,
		},
		Properties: map[string]interface{}{
			"device_id": deviceID,
		},
	})

	current := points[len(points)-1]
	collection.Features = append(collection.Features, models.GeoJSONFeature{
		Type: "Feature",
		Geometry: models.GeoJSONGeometry{
			Type:        "Point",
			Coordinates: []float64{current.Lng, current.Lat},
		},
		Properties: map[string]interface{}{
			"device_id": deviceID,
			"current":   true,
		},
	})

	return collection, nil
}

// validateFix validates fix coordinates.
func validateFix(input *models.GPSIngestRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Lat < -90 || input.Lat > 90 {
		errs = append(errs, models.FieldError{Field: "lat", Message: "must be between -90 and 90"})
	}
	if input.Lng < -180 || input.Lng > 180 {
		errs = append(errs, models.FieldError{Field: "lng", Message: "must be between -180 and 180"})
	}
	if input.Heading != nil && (*input.Heading < 0 || *input.Heading >= 360) {
		errs = append(errs, models.FieldError{Field: "heading", Message: "must be between 0 and 360"})
	}

	return errs
}

// toAPIPoint converts a domain Point to an API GPSPoint.
func toAPIPoint(p *Point) models.GPSPoint {
	return models.GPSPoint{
		ID:        p.ID,
		DeviceID:  p.DeviceID,
		Lat:       p.Lat,
		Lng:       p.Lng,
		Heading:   p.Heading,
		Timestamp: models.Timestamp(p.Timestamp),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
