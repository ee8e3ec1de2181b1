package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/guidecane/guidecane/internal/api/models"
	"github.com/guidecane/guidecane/internal/api/response"
	"github.com/guidecane/guidecane/internal/tracking"
)

// GPSHandler handles device position tracking endpoints.
type GPSHandler struct {
	service *tracking.Service
}

// NewGPSHandler creates a new GPSHandler.
func NewGPSHandler(service *tracking.Service) *GPSHandler {
	return &GPSHandler{service: service}
}

// Ingest handles POST /v1/gps - store one device fix.
func (h *GPSHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var input models.GPSIngestRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.service.Ingest(r.Context(), &input)
	if err != nil {
		var validationErr *tracking.ValidationError
		switch {
		case errors.Is(err, tracking.ErrDeviceIDRequired):
			response.BadRequest(w, r, "device_id is required", []models.FieldError{
				{Field: "device_id", Message: "is required"},
			})
		case errors.As(err, &validationErr):
			response.BadRequest(w, r, "invalid GPS fix", validationErr.Errors)
		default:
			response.InternalError(w, r, "could not store GPS fix")
		}
		return
	}

	response.Created(w, r, "", result)
}

// Latest handles GET /v1/gps/latest - most recent fix for a device.
func (h *GPSHandler) Latest(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	if deviceID == "" {
		response.BadRequest(w, r, "device_id query parameter is required", nil)
		return
	}

	point, err := h.service.Latest(r.Context(), deviceID)
	if err != nil {
		if errors.Is(err, tracking.ErrNoFixes) {
			response.NotFound(w, r, "no fixes recorded for device")
			return
		}
		response.InternalError(w, r, "could not load latest fix")
		return
	}

	response.JSON(w, r, http.StatusOK, point)
}

// Track handles GET /v1/gps/track - recorded path for a device.
func (h *GPSHandler) Track(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	if deviceID == "" {
		response.BadRequest(w, r, "device_id query parameter is required", nil)
		return
	}

	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	track, err := h.service.Track(r.Context(), deviceID, limit)
	if err != nil {
		response.InternalError(w, r, "could not load track")
		return
	}

	response.JSON(w, r, http.StatusOK, track)
}

// GeoJSON handles GET /v1/gps/geojson - recorded path as GeoJSON for map rendering.
func (h *GPSHandler) GeoJSON(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	if deviceID == "" {
		response.BadRequest(w, r, "device_id query parameter is required", nil)
		return
	}

	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	collection, err := h.service.GeoJSON(r.Context(), deviceID, limit)
	if err != nil {
		response.InternalError(w, r, "could not render GeoJSON")
		return
	}

	response.JSON(w, r, http.StatusOK, collection)
}

// parseLimit reads the optional limit query parameter. Writes a 400 and
// returns false when the value is unusable.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		response.BadRequest(w, r, "limit must be a positive integer", nil)
		return 0, false
	}

	return value, true
}
