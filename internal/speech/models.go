// Package speech converts recorded audio to text.
package speech

import (
	"context"
	"errors"
)

// Sentinel errors for transcription operations.
var (
	// ErrNoSpeech indicates the audio contained no recognizable speech.
	ErrNoSpeech = errors.New("no speech recognized")
	// ErrProviderUnavailable indicates the speech provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("speech provider unavailable")
	// ErrRateLimitExceeded indicates the API quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// Transcriber defines the interface for speech-to-text providers.
type Transcriber interface {
	// Transcribe converts recorded audio to text with a detected language
	// code. Returns ErrNoSpeech when nothing was recognized.
	Transcribe(ctx context.Context, audio []byte, contentType string) (*Transcription, error)
	// Name returns the provider identifier for logging and health reporting.
	Name() string
}

// Transcription is the result of a successful speech-to-text call.
type Transcription struct {
	Text       string
	Language   string // BCP-47-ish code as reported by the provider; may be empty
	Confidence float64
}
