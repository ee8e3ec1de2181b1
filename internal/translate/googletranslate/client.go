// Package googletranslate provides a client for the Google Cloud Translation
// v2 REST API.
package googletranslate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/guidecane/guidecane/internal/gateway/resilience"
	"github.com/guidecane/guidecane/internal/translate"
)

const (
	// ProviderName identifies this translation provider.
	ProviderName = "google-translate"

	// DefaultBaseURL is the Translation v2 API base URL.
	DefaultBaseURL = "https://translation.googleapis.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Google Translate client.
type ClientConfig struct {
	// APIKey is the Translation API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to Google API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Registry is the gateway registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Google Translation v2 API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new Google Translate client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
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
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// TranslateToEnglish converts text to English. English input is returned
// unchanged without a network call. Source codes that do not look like
// language tags are dropped so the service detects the language itself.
func (c *Client) TranslateToEnglish(ctx context.Context, text, sourceLang string) (*translate.Translation, error) {
	if translate.IsEnglish(sourceLang) {
		return &translate.Translation{
			Text:           text,
			SourceLanguage: sourceLang,
		}, nil
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", text)
	params.Set("target", "en")
	params.Set("format", "text")
	if translate.IsValidLanguageCode(sourceLang) {
		params.Set("source", sourceLang)
	}

	reqURL := fmt.Sprintf("%s/language/translate/v2", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug().
		Str("source_lang", sourceLang).
		Int("text_len", len(text)).
		Msg("translating text to English")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, translate.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, translate.ErrRateLimitExceeded
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("translation provider returned status %d: %w", resp.StatusCode, translate.ErrProviderUnavailable)
	}

	var gtResp translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gtResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(gtResp.Data.Translations) == 0 {
		return nil, translate.ErrProviderUnavailable
	}

	tr := gtResp.Data.Translations[0]
	source := sourceLang
	if tr.DetectedSourceLanguage != "" {
		source = tr.DetectedSourceLanguage
	}

	return &translate.Translation{
		Text:           tr.TranslatedText,
		SourceLanguage: source,
	}, nil
}

// translateResponse is the Translation v2 API response.
type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}
