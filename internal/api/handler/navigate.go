package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/guidecane/guidecane/internal/api/models"
	"github.com/guidecane/guidecane/internal/api/response"
	"github.com/guidecane/guidecane/internal/navigation"
)

// maxAudioUploadBytes caps the multipart upload size. Voice commands are a
// few seconds of compressed audio; anything near this limit is garbage.
const maxAudioUploadBytes = 10 << 20

// NavigateHandler handles voice navigation requests.
type NavigateHandler struct {
	service *navigation.Service
}

// NewNavigateHandler creates a new NavigateHandler.
func NewNavigateHandler(service *navigation.Service) *NavigateHandler {
	return &NavigateHandler{service: service}
}

// Navigate handles POST /v1/navigate - the voice-to-directions pipeline.
// Accepts a multipart form with device_id, lat, lng, optional heading and an
// audio file. Malformed input is rejected with 400 before orchestration;
// once the pipeline runs the response is always 200 with a success flag.
func (h *NavigateHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioUploadBytes)

	if err := r.ParseMultipartForm(maxAudioUploadBytes); err != nil {
		response.BadRequest(w, r, "request must be a multipart form with an audio file", nil)
		return
	}

	var fieldErrors []models.FieldError

	deviceID := r.FormValue("device_id")
	if deviceID == "" {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "device_id", Message: "is required"})
	}

	lat, err := strconv.ParseFloat(r.FormValue("lat"), 64)
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "lat", Message: "must be a number"})
	} else if lat < -90 || lat > 90 {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "lat", Message: "must be between -90 and 90"})
	}

	lng, err := strconv.ParseFloat(r.FormValue("lng"), 64)
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "lng", Message: "must be a number"})
	} else if lng < -180 || lng > 180 {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "lng", Message: "must be between -180 and 180"})
	}

	var heading *float64
	if raw := r.FormValue("heading"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 || value >= 360 {
			fieldErrors = append(fieldErrors, models.FieldError{Field: "heading", Message: "must be between 0 and 360"})
		} else {
			heading = &value
		}
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{Field: "audio", Message: "is required"})
	}

	if len(fieldErrors) > 0 {
		if file != nil {
			_ = file.Close()
		}
		response.BadRequest(w, r, "invalid navigation request", fieldErrors)
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, r, "could not read audio file", nil)
		return
	}
	if len(audio) == 0 {
		response.BadRequest(w, r, "audio file is empty", []models.FieldError{
			{Field: "audio", Message: "cannot be empty"},
		})
		return
	}

	outcome := h.service.Navigate(r.Context(), navigation.NavigateInput{
		DeviceID:         deviceID,
		Origin:           navigation.GPSFix{Lat: lat, Lng: lng, Heading: heading},
		Audio:            audio,
		AudioContentType: header.Header.Get("Content-Type"),
	})

	response.JSON(w, r, http.StatusOK, outcome)
}

// History handles GET /v1/navigate/history - recent navigation attempts.
func (h *NavigateHandler) History(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	if deviceID == "" {
		response.BadRequest(w, r, "device_id query parameter is required", nil)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 || value > 100 {
			response.BadRequest(w, r, "limit must be between 1 and 100", nil)
			return
		}
		limit = value
	}

	items, err := h.service.History(r.Context(), deviceID, limit)
	if err != nil {
		response.InternalError(w, r, "could not load navigation history")
		return
	}

	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}
