package openrouteservice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/guidecane/guidecane/internal/geocoding"
)

type mockHTTPClient struct {
	client *http.Client
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.client.Do(req)
}

func TestClient_Geocode_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocode/search" {
			t.Errorf("expected /geocode/search, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "mock123" {
			t.Errorf("expected api_key query param, got %q", q.Get("api_key"))
		}
		if q.Get("text") != "dhaka university" {
			t.Errorf("expected text 'dhaka university', got %q", q.Get("text"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"features": [
				{
					"geometry": {"coordinates": [90.3942, 23.7289]},
					"properties": {"label": "Dhaka University, Dhaka", "name": "Dhaka University", "confidence": 0.9}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	place, err := client.Geocode(context.Background(), "dhaka university")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if place.Lat != 23.7289 {
		t.Errorf("expected lat 23.7289, got %f", place.Lat)
	}
	if place.Lon != 90.3942 {
		t.Errorf("expected lon 90.3942, got %f", place.Lon)
	}
	if place.Address != "Dhaka University, Dhaka" {
		t.Errorf("unexpected address %q", place.Address)
	}
}

func TestClient_Geocode_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	_, err := client.Geocode(context.Background(), "xyzzy123")
	if !errors.Is(err, geocoding.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Geocode_EmptyQuery(t *testing.T) {
	client := NewClient(ClientConfig{
		APIKey: "mock123",
		Logger: zerolog.Nop(),
	})

	_, err := client.Geocode(context.Background(), "")
	if !errors.Is(err, geocoding.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty query, got %v", err)
	}
}

func TestClient_Geocode_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	_, err := client.Geocode(context.Background(), "dhaka university")
	if !errors.Is(err, geocoding.ErrRateLimitExceeded) {
		t.Fatalf("expected ErrRateLimitExceeded, got %v", err)
	}
}

func TestClient_Geocode_MissingLabelFallsBackToQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[90.4,23.7]},"properties":{}}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	place, err := client.Geocode(context.Background(), "some corner shop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if place.Address != "some corner shop" {
		t.Errorf("expected address fallback to query, got %q", place.Address)
	}
}
