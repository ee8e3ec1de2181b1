package routing

import (
	"fmt"
	"math"
)

// FormatDistance renders a distance in meters as human-readable text.
// Distances under a kilometer are reported in meters, longer distances in
// kilometers with one decimal place up to 10 km.
func FormatDistance(meters int) string {
	if meters < 0 {
		meters = 0
	}
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	km := float64(meters) / 1000
	if km < 10 {
		return fmt.Sprintf("%.1f km", km)
	}
	return fmt.Sprintf("%.0f km", km)
}

// FormatDuration renders a duration in seconds as human-readable text.
// Durations are rounded up to whole minutes; anything under a minute is
// reported as "1 min".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	mins := int(math.Ceil(float64(seconds) / 60))
	if mins < 1 {
		mins = 1
	}
	if mins < 60 {
		return fmt.Sprintf("%d %s", mins, pluralMins(mins))
	}

	hours := mins / 60
	rem := mins % 60
	hourText := fmt.Sprintf("%d %s", hours, pluralHours(hours))
	if rem == 0 {
		return hourText
	}
	return fmt.Sprintf("%s %d %s", hourText, rem, pluralMins(rem))
}

func pluralMins(n int) string {
	if n == 1 {
		return "min"
	}
	return "mins"
}

func pluralHours(n int) string {
	if n == 1 {
		return "hour"
	}
	return "hours"
}

// maneuverTags maps ORS instruction type codes to stable maneuver tags.
// Unknown codes yield an empty tag rather than a guess.
var maneuverTags = map[int]string{
	0:  "turn-left",
	1:  "turn-right",
	2:  "turn-sharp-left",
	3:  "turn-sharp-right",
	4:  "turn-slight-left",
	5:  "turn-slight-right",
	6:  "straight",
	7:  "roundabout-enter",
	8:  "roundabout-exit",
	9:  "uturn",
	10: "arrive",
	11: "depart",
	12: "keep-left",
	13: "keep-right",
}

// ManeuverTag returns the maneuver tag for an ORS instruction type code,
// or an empty string for unrecognized codes.
func ManeuverTag(code int) string {
	return maneuverTags[code]
}
