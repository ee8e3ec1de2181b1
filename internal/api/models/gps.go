package models

// GPSIngestRequest is a single device position fix.
type GPSIngestRequest struct {
	DeviceID string   `json:"device_id" validate:"required"`
	Lat      float64  `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng      float64  `json:"lng" validate:"required,gte=-180,lte=180"`
	Heading  *float64 `json:"heading,omitempty" validate:"omitempty,gte=0,lt=360"`
}

// GPSIngestResponse acknowledges a stored fix.
type GPSIngestResponse struct {
	ID        int64     `json:"id"`
	Timestamp Timestamp `json:"timestamp"`
}

// GPSPoint is one stored fix returned by the tracking endpoints.
type GPSPoint struct {
	ID        int64     `json:"id"`
	DeviceID  string    `json:"device_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Heading   *float64  `json:"heading,omitempty"`
	Timestamp Timestamp `json:"timestamp"`
}

// GPSTrack is a recorded path for a device.
type GPSTrack struct {
	DeviceID       string     `json:"device_id"`
	Points         []GPSPoint `json:"points"`
	Polyline       string     `json:"polyline"`
	DistanceMeters float64    `json:"distance_meters"`
}

// GeoJSONFeatureCollection is a minimal GeoJSON wrapper for map rendering.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// GeoJSONFeature is a single GeoJSON feature.
type GeoJSONFeature struct {
	Type       string                 `json:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// GeoJSONGeometry holds GeoJSON geometry with [lng, lat] coordinate order.
type GeoJSONGeometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}
