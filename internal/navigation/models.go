// Package navigation orchestrates the voice-to-directions pipeline: recorded
// audio and a GPS fix come in, a walking route (or a diagnostic failure)
// comes out.
package navigation

import (
	"errors"
	"time"
)

// Package errors.
var (
	// ErrRecordNotFound indicates no navigation record with the given id exists.
	ErrRecordNotFound = errors.New("navigation record not found")
)

// GPSFix is the device position at the moment the voice command was issued.
type GPSFix struct {
	Lat     float64
	Lng     float64
	Heading *float64 // Degrees clockwise from north; nil when the device did not report one
}

// Record is the durable artifact of one navigation attempt. It is built once
// at the end of a successful pipeline run and never mutated afterwards.
type Record struct {
	ID       int64
	DeviceID string

	OriginLat float64
	OriginLng float64
	Heading   *float64

	Transcript       string
	DetectedLanguage string
	TranslatedText   string

	DestinationPlace string
	DestinationLat   float64
	DestinationLng   float64

	DistanceText     string
	DurationText     string
	OverviewPolyline string

	AudioPath string

	Success   bool
	ErrorText string

	CreatedAt time.Time
}
