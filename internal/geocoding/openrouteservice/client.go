// Package openrouteservice provides a client for the OpenRouteService
// geocoding API (Pelias). It shares the directions API credential, so one
// routing key covers both place resolution and route computation.
package openrouteservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/guidecane/guidecane/internal/gateway/resilience"
	"github.com/guidecane/guidecane/internal/geocoding"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "openrouteservice-geocode"

	// DefaultBaseURL is the OpenRouteService API base URL.
	DefaultBaseURL = "https://api.openrouteservice.org"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the OpenRouteService geocoding client.
type ClientConfig struct {
	// APIKey is the ORS API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to ORS API).
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

// Client is an OpenRouteService geocoding API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new OpenRouteService geocoding client.
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

// Geocode resolves a place description to a point and canonical address.
func (c *Client) Geocode(ctx context.Context, query string) (*geocoding.Place, error) {
	if query == "" {
		return nil, geocoding.ErrNotFound
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("text", query)
	params.Set("size", "1")

	reqURL := fmt.Sprintf("%s/geocode/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/geo+json")

	c.logger.Debug().
		Str("query", query).
		Msg("geocoding place via ORS")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, geocoding.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, geocoding.ErrRateLimitExceeded
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("geocoding provider returned status %d: %w", resp.StatusCode, geocoding.ErrProviderUnavailable)
	}

	var geoResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(geoResp.Features) == 0 {
		return nil, geocoding.ErrNotFound
	}

	feature := geoResp.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return nil, geocoding.ErrNotFound
	}

	place := &geocoding.Place{
		// Pelias returns [lon, lat]
		Lon:     feature.Geometry.Coordinates[0],
		Lat:     feature.Geometry.Coordinates[1],
		Address: feature.Properties.Label,
	}
	if place.Address == "" {
		place.Address = query
	}

	c.logger.Debug().
		Str("query", query).
		Str("address", place.Address).
		Msg("geocoded place")

	return place, nil
}

// geocodeResponse is the Pelias GeoJSON search response.
type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label      string  `json:"label"`
			Name       string  `json:"name"`
			Confidence float64 `json:"confidence"`
		} `json:"properties"`
	} `json:"features"`
}
