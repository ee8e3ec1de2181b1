package navigation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/guidecane/guidecane/internal/api/models"
	"github.com/guidecane/guidecane/internal/geocoding"
	"github.com/guidecane/guidecane/internal/routing"
	"github.com/guidecane/guidecane/internal/speech"
	"github.com/guidecane/guidecane/internal/translate"
)

// Stage failure messages returned to the device. The geocoding message is
// built per request because it carries the attempted place text.
const (
	errMissingCredential = "routing service credential is not configured"
	errTranscription     = "could not transcribe audio"
	errExtraction        = "could not extract destination place from speech"
	errDirections        = "could not retrieve directions"
	errPersistence       = "could not save navigation request"
)

// DefaultStageTimeout bounds each gateway call so one slow provider cannot
// hold a request slot indefinitely.
const DefaultStageTimeout = 25 * time.Second

// StageRecorder receives timing for each executed pipeline stage.
type StageRecorder interface {
	RecordStage(stage string, duration time.Duration, err error)
}

// Config holds orchestrator configuration.
type Config struct {
	// RoutingCredentialSet reports whether the routing service credential
	// is configured. When false, every request short-circuits with a
	// configuration error before any network call.
	RoutingCredentialSet bool

	// StageTimeout is the per-gateway-call timeout (optional, defaults to 25s).
	StageTimeout time.Duration

	// Metrics receives per-stage timings (optional).
	Metrics StageRecorder

	// Logger for pipeline operations.
	Logger zerolog.Logger
}

// NavigateInput is one voice navigation request from a device.
type NavigateInput struct {
	DeviceID         string
	Origin           GPSFix
	Audio            []byte
	AudioContentType string
}

// Service drives the voice-to-directions pipeline. Stages run strictly in
// sequence; the first fatal failure short-circuits the pipeline and the
// partial result accumulated so far is returned for diagnosis. Translation is
// the one soft stage: when it fails the original-language transcript is used
// as-is, because a transcript in its own language is still actionable while
// directions cannot run on silence.
type Service struct {
	transcriber speech.Transcriber
	translator  translate.Translator
	geocoder    geocoding.Geocoder
	directions  routing.Provider
	repo        Repository
	audio       AudioStore

	credentialOK bool
	stageTimeout time.Duration
	metrics      StageRecorder
	logger       zerolog.Logger
}

// NewService creates a new navigation orchestrator.
func NewService(
	transcriber speech.Transcriber,
	translator translate.Translator,
	geocoder geocoding.Geocoder,
	directions routing.Provider,
	repo Repository,
	audio AudioStore,
	cfg Config,
) *Service {
	stageTimeout := cfg.StageTimeout
	if stageTimeout == 0 {
		stageTimeout = DefaultStageTimeout
	}

	return &Service{
		transcriber:  transcriber,
		translator:   translator,
		geocoder:     geocoder,
		directions:   directions,
		repo:         repo,
		audio:        audio,
		credentialOK: cfg.RoutingCredentialSet,
		stageTimeout: stageTimeout,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
	}
}

// recordStage reports stage timing when a metrics recorder is configured.
func (s *Service) recordStage(stage string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordStage(stage, time.Since(start), err)
	}
}

// Navigate runs the full pipeline for one request and always returns a
// well-formed outcome. Nothing is persisted unless a complete route was
// obtained, so a failed outcome always carries request id 0.
func (s *Service) Navigate(ctx context.Context, input NavigateInput) *models.NavigateResponse {
	resp := &models.NavigateResponse{}

	fail := func(msg string) *models.NavigateResponse {
		resp.Success = false
		resp.RequestID = 0
		resp.Steps = nil
		resp.Error = msg
		return resp
	}

	log := s.logger.With().Str("device_id", input.DeviceID).Logger()

	if !s.credentialOK {
		log.Error().Msg("navigation request rejected: routing credential missing")
		return fail(errMissingCredential)
	}

	// Transcribe. A missing transcript is fatal.
	start := time.Now()
	tctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	transcription, err := s.transcriber.Transcribe(tctx, input.Audio, input.AudioContentType)
	cancel()
	s.recordStage("transcribe", start, err)
	if err != nil {
		log.Warn().Err(err).Msg("transcription failed")
		return fail(errTranscription)
	}
	resp.Transcript = transcription.Text
	resp.DetectedLanguage = transcription.Language

	// Translate. A failure here degrades rather than aborts: the
	// original-language transcript is carried forward.
	english := transcription.Text
	start = time.Now()
	tctx, cancel = context.WithTimeout(ctx, s.stageTimeout)
	translation, err := s.translator.TranslateToEnglish(tctx, transcription.Text, transcription.Language)
	cancel()
	s.recordStage("translate", start, err)
	if err != nil {
		log.Warn().Err(err).Msg("translation failed, continuing with untranslated transcript")
	} else {
		english = translation.Text
		if resp.DetectedLanguage == "" {
			resp.DetectedLanguage = translation.SourceLanguage
		}
	}

	place, ok := ExtractPlace(english)
	if !ok {
		log.Warn().Str("text", english).Msg("no destination place in transcript")
		return fail(errExtraction)
	}

	// Geocode. The attempted query is included in the failure message so a
	// bad extraction can be diagnosed from the device logs alone.
	start = time.Now()
	gctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	destination, err := s.geocoder.Geocode(gctx, place)
	cancel()
	s.recordStage("geocode", start, err)
	if err != nil {
		log.Warn().Err(err).Str("place", place).Msg("geocoding failed")
		return fail(fmt.Sprintf("could not find a location for %q", place))
	}
	resp.DestinationPlace = destination.Address
	resp.DestinationLat = destination.Lat
	resp.DestinationLng = destination.Lon

	start = time.Now()
	rctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	route, err := s.directions.GetWalkingDirections(rctx, routing.DirectionsRequest{
		Origin:      routing.Coordinate{Lat: input.Origin.Lat, Lon: input.Origin.Lng},
		Destination: routing.Coordinate{Lat: destination.Lat, Lon: destination.Lon},
		Language:    "en",
	})
	cancel()
	s.recordStage("directions", start, err)
	if err != nil {
		log.Warn().Err(err).Msg("directions lookup failed")
		return fail(errDirections)
	}
	resp.DistanceText = route.DistanceText
	resp.DurationText = route.DurationText
	resp.OverviewPolyline = route.OverviewPolyline
	resp.Steps = make([]models.RouteStep, 0, len(route.Steps))
	for _, step := range route.Steps {
		resp.Steps = append(resp.Steps, models.RouteStep{
			Instruction: step.Instruction,
			Distance:    step.DistanceText,
			Duration:    step.DurationText,
			Maneuver:    step.Maneuver,
		})
	}

	// Audio archival is best-effort; the route is already in hand.
	audioPath := ""
	if s.audio != nil {
		path, err := s.audio.Save(ctx, input.DeviceID, input.Audio, input.AudioContentType)
		if err != nil {
			log.Warn().Err(err).Msg("audio archival failed")
		} else {
			audioPath = path
		}
	}

	record := &Record{
		DeviceID:         input.DeviceID,
		OriginLat:        input.Origin.Lat,
		OriginLng:        input.Origin.Lng,
		Heading:          input.Origin.Heading,
		Transcript:       resp.Transcript,
		DetectedLanguage: resp.DetectedLanguage,
		TranslatedText:   english,
		DestinationPlace: resp.DestinationPlace,
		DestinationLat:   resp.DestinationLat,
		DestinationLng:   resp.DestinationLng,
		DistanceText:     resp.DistanceText,
		DurationText:     resp.DurationText,
		OverviewPolyline: resp.OverviewPolyline,
		AudioPath:        audioPath,
		Success:          true,
		CreatedAt:        time.Now().UTC(),
	}

	start = time.Now()
	pctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	id, err := s.repo.Create(pctx, record)
	cancel()
	s.recordStage("persist", start, err)
	if err != nil {
		log.Error().Err(err).Msg("persisting navigation record failed")
		return fail(errPersistence)
	}

	resp.Success = true
	resp.RequestID = id

	log.Info().
		Int64("request_id", id).
		Str("place", place).
		Str("distance", resp.DistanceText).
		Int("steps", len(resp.Steps)).
		Msg("navigation request completed")

	return resp
}

// History retrieves the most recent navigation attempts for a device,
// newest first.
func (s *Service) History(ctx context.Context, deviceID string, limit int) ([]models.NavigationRecord, error) {
	records, err := s.repo.ListByDevice(ctx, deviceID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]models.NavigationRecord, 0, len(records))
	for _, r := range records {
		items = append(items, models.NavigationRecord{
			ID:               r.ID,
			DeviceID:         r.DeviceID,
			Transcript:       r.Transcript,
			DetectedLanguage: r.DetectedLanguage,
			DestinationPlace: r.DestinationPlace,
			DestinationLat:   r.DestinationLat,
			DestinationLng:   r.DestinationLng,
			DistanceText:     r.DistanceText,
			DurationText:     r.DurationText,
			CreatedAt:        models.Timestamp(r.CreatedAt),
		})
	}

	return items, nil
}
