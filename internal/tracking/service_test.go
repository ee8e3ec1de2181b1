package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidecane/guidecane/internal/api/models"
	"github.com/guidecane/guidecane/pkg/polyline"
)

func ingestFix(t *testing.T, svc *Service, deviceID string, lat, lng float64) {
	t.Helper()
	_, err := svc.Ingest(context.Background(), &models.GPSIngestRequest{
		DeviceID: deviceID,
		Lat:      lat,
		Lng:      lng,
	})
	require.NoError(t, err)
}

func TestService_Ingest(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	heading := 45.0
	resp, err := svc.Ingest(context.Background(), &models.GPSIngestRequest{
		DeviceID: "stick-01",
		Lat:      23.7289,
		Lng:      90.3942,
		Heading:  &heading,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	latest, err := svc.Latest(context.Background(), "stick-01")
	require.NoError(t, err)
	assert.Equal(t, 23.7289, latest.Lat)
	assert.Equal(t, 90.3942, latest.Lng)
	require.NotNil(t, latest.Heading)
	assert.Equal(t, 45.0, *latest.Heading)
}

func TestService_Ingest_Validation(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	_, err := svc.Ingest(context.Background(), &models.GPSIngestRequest{
		Lat: 23.7289, Lng: 90.3942,
	})
	assert.ErrorIs(t, err, ErrDeviceIDRequired)

	_, err = svc.Ingest(context.Background(), &models.GPSIngestRequest{
		DeviceID: "stick-01", Lat: 91, Lng: 90.3942,
	})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "lat", validationErr.Errors[0].Field)

	badHeading := 400.0
	_, err = svc.Ingest(context.Background(), &models.GPSIngestRequest{
		DeviceID: "stick-01", Lat: 23.7289, Lng: 90.3942, Heading: &badHeading,
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "heading", validationErr.Errors[0].Field)
}

func TestService_Latest_NoFixes(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	_, err := svc.Latest(context.Background(), "stick-01")
	assert.True(t, errors.Is(err, ErrNoFixes))
}

func TestService_Track(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	ingestFix(t, svc, "stick-01", 23.7289, 90.3942)
	ingestFix(t, svc, "stick-01", 23.7310, 90.3951)
	ingestFix(t, svc, "stick-01", 23.7350, 90.3900)
	ingestFix(t, svc, "stick-02", 52.3700, 4.8900)

	track, err := svc.Track(context.Background(), "stick-01", 0)
	require.NoError(t, err)

	require.Len(t, track.Points, 3)
	assert.Equal(t, "stick-01", track.DeviceID)
	// Chronological order.
	assert.Equal(t, 23.7289, track.Points[0].Lat)
	assert.Equal(t, 23.7350, track.Points[2].Lat)
	assert.Greater(t, track.DistanceMeters, 0.0)

	decoded := polyline.Decode(track.Polyline)
	require.Len(t, decoded, 3)
	assert.InDelta(t, 23.7289, decoded[0].Lat, 1e-5)
	assert.InDelta(t, 90.3942, decoded[0].Lng, 1e-5)
}

func TestService_GeoJSON(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	ingestFix(t, svc, "stick-01", 23.7289, 90.3942)
	ingestFix(t, svc, "stick-01", 23.7310, 90.3951)

	collection, err := svc.GeoJSON(context.Background(), "stick-01", 0)
	require.NoError(t, err)

	assert.Equal(t, "FeatureCollection", collection.Type)
	require.Len(t, collection.Features, 2)

	line := collection.Features[0]
	assert.Equal(t, "LineString", line.Geometry.Type)
	lineCoords, ok := line.Geometry.Coordinates.([][]float64)
	require.True(t, ok)
	require.Len(t, lineCoords, 2)
	// GeoJSON coordinate order is [lng, lat].
	assert.Equal(t, 90.3942, lineCoords[0][0])
	assert.Equal(t, 23.7289, lineCoords[0][1])

	current := collection.Features[1]
	assert.Equal(t, "Point", current.Geometry.Type)
	pointCoords, ok := current.Geometry.Coordinates.([]float64)
	require.True(t, ok)
	assert.Equal(t, 90.3951, pointCoords[0])
	assert.Equal(t, 23.7310, pointCoords[1])
}

func TestService_GeoJSON_Empty(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	collection, err := svc.GeoJSON(context.Background(), "stick-01", 0)
	require.NoError(t, err)
	assert.Equal(t, "FeatureCollection", collection.Type)
	assert.Empty(t, collection.Features)
}
