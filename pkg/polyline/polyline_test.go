package polyline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Empty(t *testing.T) {
	assert.Nil(t, Decode(""))
}

func TestDecode_KnownPolyline(t *testing.T) {
	// Reference example from the polyline algorithm documentation.
	coords := Decode("_p~iF~ps|U_ulLnnqC_mqNvxq`@")

	require.Len(t, coords, 3)
	assert.InDelta(t, 38.5, coords[0].Lat, 1e-5)
	assert.InDelta(t, -120.2, coords[0].Lng, 1e-5)
	assert.InDelta(t, 40.7, coords[1].Lat, 1e-5)
	assert.InDelta(t, -120.95, coords[1].Lng, 1e-5)
	assert.InDelta(t, 43.252, coords[2].Lat, 1e-5)
	assert.InDelta(t, -126.453, coords[2].Lng, 1e-5)
}

func TestEncode_RoundTrip(t *testing.T) {
	original := []Coordinate{
		{Lat: 23.7289, Lng: 90.3942},
		{Lat: 23.7310, Lng: 90.3951},
		{Lat: 23.7350, Lng: 90.3900},
	}

	decoded := Decode(Encode(original))

	require.Len(t, decoded, len(original))
	for i := range original {
		assert.InDelta(t, original[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, original[i].Lng, decoded[i].Lng, 1e-5)
	}
}

func TestEncode_Empty(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
}

func TestLength(t *testing.T) {
	assert.Zero(t, Length(nil))
	assert.Zero(t, Length([]Coordinate{{Lat: 23.7289, Lng: 90.3942}}))

	// One degree of latitude is roughly 111 km.
	coords := []Coordinate{
		{Lat: 23.0, Lng: 90.0},
		{Lat: 24.0, Lng: 90.0},
	}
	length := Length(coords)
	assert.InDelta(t, 111195, length, 200)

	// Adding intermediate points along the same line barely changes the total.
	withMidpoint := []Coordinate{
		{Lat: 23.0, Lng: 90.0},
		{Lat: 23.5, Lng: 90.0},
		{Lat: 24.0, Lng: 90.0},
	}
	assert.True(t, math.Abs(Length(withMidpoint)-length) < 1)
}
