// Package tracking stores device GPS fixes and renders recorded tracks.
package tracking

import (
	"errors"
	"time"
)

// Package errors.
var (
	// ErrNoFixes indicates no fixes have been recorded for the device.
	ErrNoFixes = errors.New("no fixes recorded for device")
)

// Point is one stored GPS fix.
type Point struct {
	ID        int64
	DeviceID  string
	Lat       float64
	Lng       float64
	Heading   *float64
	Timestamp time.Time
}
