package models

// NavigateResponse is the outcome of one voice navigation request. It is
// always returned with HTTP 200 once orchestration starts; pipeline failures
// are reported through the success flag and error field rather than a
// transport error so the device firmware has one shape to parse.
type NavigateResponse struct {
	Success   bool  `json:"success"`
	RequestID int64 `json:"request_id"`

	Transcript       string `json:"transcript,omitempty"`
	DetectedLanguage string `json:"detected_language,omitempty"`

	DestinationPlace string  `json:"destination_place,omitempty"`
	DestinationLat   float64 `json:"destination_lat,omitempty"`
	DestinationLng   float64 `json:"destination_lng,omitempty"`

	DistanceText     string      `json:"distance_text,omitempty"`
	DurationText     string      `json:"duration_text,omitempty"`
	OverviewPolyline string      `json:"overview_polyline,omitempty"`
	Steps            []RouteStep `json:"steps,omitempty"`

	Error string `json:"error,omitempty"`
}

// RouteStep is one maneuver in a walking route, in traversal order.
type RouteStep struct {
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
	Maneuver    string `json:"maneuver,omitempty"`
}

// NavigationRecord is a persisted navigation attempt returned by the history
// endpoint.
type NavigationRecord struct {
	ID               int64     `json:"id"`
	DeviceID         string    `json:"device_id"`
	Transcript       string    `json:"transcript"`
	DetectedLanguage string    `json:"detected_language,omitempty"`
	DestinationPlace string    `json:"destination_place,omitempty"`
	DestinationLat   float64   `json:"destination_lat,omitempty"`
	DestinationLng   float64   `json:"destination_lng,omitempty"`
	DistanceText     string    `json:"distance_text,omitempty"`
	DurationText     string    `json:"duration_text,omitempty"`
	CreatedAt        Timestamp `json:"created_at"`
}
