package deepgram

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/guidecane/guidecane/internal/speech"
)

type mockHTTPClient struct {
	client *http.Client
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.client.Do(req)
}

func TestClient_Transcribe_Success(t *testing.T) {
	audio := []byte("fake-webm-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/listen" {
			t.Errorf("expected /v1/listen, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Token mock123" {
			t.Errorf("expected Token auth header, got %q", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("detect_language") != "true" {
			t.Error("expected detect_language=true")
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != string(audio) {
			t.Error("audio bytes not forwarded verbatim")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"results": {
				"channels": [
					{
						"detected_language": "en",
						"alternatives": [
							{"transcript": "take me to Dhaka University", "confidence": 0.97}
						]
					}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	result, err := client.Transcribe(context.Background(), audio, "audio/webm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Text != "take me to Dhaka University" {
		t.Errorf("unexpected transcript %q", result.Text)
	}
	if result.Language != "en" {
		t.Errorf("expected language 'en', got %q", result.Language)
	}
	if result.Confidence != 0.97 {
		t.Errorf("expected confidence 0.97, got %f", result.Confidence)
	}
}

func TestClient_Transcribe_EmptyTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"results":{"channels":[{"detected_language":"","alternatives":[{"transcript":"  ","confidence":0}]}]}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	_, err := client.Transcribe(context.Background(), []byte("audio"), "audio/webm")
	if !errors.Is(err, speech.ErrNoSpeech) {
		t.Fatalf("expected ErrNoSpeech, got %v", err)
	}
}

func TestClient_Transcribe_EmptyAudio(t *testing.T) {
	client := NewClient(ClientConfig{
		APIKey: "mock123",
		Logger: zerolog.Nop(),
	})

	_, err := client.Transcribe(context.Background(), nil, "audio/webm")
	if !errors.Is(err, speech.ErrNoSpeech) {
		t.Fatalf("expected ErrNoSpeech for empty audio, got %v", err)
	}
}

func TestClient_Transcribe_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	_, err := client.Transcribe(context.Background(), []byte("audio"), "audio/webm")
	if !errors.Is(err, speech.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestClient_Transcribe_UnknownContentTypeFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/octet-stream" {
			t.Errorf("expected octet-stream fallback, got %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"results":{"channels":[{"detected_language":"en","alternatives":[{"transcript":"hello","confidence":0.9}]}]}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	_, err := client.Transcribe(context.Background(), []byte("audio"), "text/plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
