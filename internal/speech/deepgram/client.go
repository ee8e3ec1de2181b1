// Package deepgram provides a client for the Deepgram pre-recorded
// transcription API. Commands arrive as short one-shot recordings, so the
// batch /v1/listen endpoint is used rather than the streaming interface.
package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/guidecane/guidecane/internal/gateway/resilience"
	"github.com/guidecane/guidecane/internal/speech"
)

const (
	// ProviderName identifies this speech provider.
	ProviderName = "deepgram"

	// DefaultBaseURL is the Deepgram API base URL.
	DefaultBaseURL = "https://api.deepgram.com"

	// DefaultModel is the transcription model to use.
	DefaultModel = "nova-2"

	// DefaultTimeout is the default request timeout. Transcription of a
	// short voice command is slower than a metadata lookup, so this is
	// more generous than the other gateway timeouts.
	DefaultTimeout = 20 * time.Second
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Deepgram client.
type ClientConfig struct {
	// APIKey is the Deepgram API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to Deepgram API).
	BaseURL string

	// Model is the transcription model (optional, defaults to nova-2).
	Model string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 20s).
	Timeout time.Duration

	// Registry is the gateway registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Deepgram pre-recorded transcription API client.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new Deepgram client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		clientCfg.Timeout = timeout
		clientCfg.Registry = cfg.Registry
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Transcribe converts recorded audio to text. The language is detected by
// the provider; whatever code it reports is passed through untouched.
func (c *Client) Transcribe(ctx context.Context, audio []byte, contentType string) (*speech.Transcription, error) {
	if len(audio) == 0 {
		return nil, speech.ErrNoSpeech
	}

	if contentType == "" || !strings.HasPrefix(contentType, "audio/") {
		contentType = "application/octet-stream"
	}

	params := url.Values{}
	params.Set("model", c.model)
	params.Set("detect_language", "true")
	params.Set("punctuate", "true")
	params.Set("smart_format", "true")

	reqURL := fmt.Sprintf("%s/v1/listen?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug().
		Int("audio_bytes", len(audio)).
		Str("content_type", contentType).
		Msg("transcribing audio via Deepgram")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, speech.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, speech.ErrRateLimitExceeded
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("speech provider returned status %d: %w", resp.StatusCode, speech.ErrProviderUnavailable)
	}

	var dgResp listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&dgResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(dgResp.Results.Channels) == 0 {
		return nil, speech.ErrNoSpeech
	}

	channel := dgResp.Results.Channels[0]
	if len(channel.Alternatives) == 0 {
		return nil, speech.ErrNoSpeech
	}

	alt := channel.Alternatives[0]
	if strings.TrimSpace(alt.Transcript) == "" {
		return nil, speech.ErrNoSpeech
	}

	result := &speech.Transcription{
		Text:       alt.Transcript,
		Language:   channel.DetectedLanguage,
		Confidence: alt.Confidence,
	}

	c.logger.Debug().
		Str("language", result.Language).
		Float64("confidence", result.Confidence).
		Msg("transcription complete")

	return result, nil
}

// listenResponse is the Deepgram pre-recorded API response.
type listenResponse struct {
	Results struct {
		Channels []struct {
			DetectedLanguage string `json:"detected_language"`
			Alternatives     []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}
