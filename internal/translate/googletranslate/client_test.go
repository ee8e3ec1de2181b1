package googletranslate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/guidecane/guidecane/internal/translate"
)

type mockHTTPClient struct {
	client *http.Client
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.client.Do(req)
}

func TestClient_TranslateToEnglish_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/language/translate/v2" {
			t.Errorf("expected /language/translate/v2, got %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if r.Form.Get("target") != "en" {
			t.Errorf("expected target=en, got %q", r.Form.Get("target"))
		}
		if r.Form.Get("source") != "bn" {
			t.Errorf("expected source=bn, got %q", r.Form.Get("source"))
		}
		if r.Form.Get("q") != "আমাকে ঢাকা বিশ্ববিদ্যালয়ে নিয়ে যাও" {
			t.Errorf("unexpected q %q", r.Form.Get("q"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"data": {
				"translations": [
					{"translatedText": "take me to Dhaka University", "detectedSourceLanguage": "bn"}
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

	result, err := client.TranslateToEnglish(context.Background(), "আমাকে ঢাকা বিশ্ববিদ্যালয়ে নিয়ে যাও", "bn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Text != "take me to Dhaka University" {
		t.Errorf("unexpected translation %q", result.Text)
	}
	if result.SourceLanguage != "bn" {
		t.Errorf("expected source language 'bn', got %q", result.SourceLanguage)
	}
}

func TestClient_TranslateToEnglish_EnglishIsIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no network call expected for English input")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	result, err := client.TranslateToEnglish(context.Background(), "take me to Dhaka University", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "take me to Dhaka University" {
		t.Errorf("English input should pass through unchanged, got %q", result.Text)
	}
	if result.SourceLanguage != "en" {
		t.Errorf("expected source language 'en', got %q", result.SourceLanguage)
	}
}

func TestClient_TranslateToEnglish_InvalidSourceOmitted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if r.Form.Has("source") {
			t.Errorf("expected source to be omitted, got %q", r.Form.Get("source"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"hello","detectedSourceLanguage":"fr"}]}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIKey:     "mock123",
		BaseURL:    server.URL,
		HTTPClient: &mockHTTPClient{client: server.Client()},
		Logger:     zerolog.Nop(),
	})

	result, err := client.TranslateToEnglish(context.Background(), "bonjour", "not a language!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SourceLanguage != "fr" {
		t.Errorf("expected detected source 'fr', got %q", result.SourceLanguage)
	}
}

func TestClient_TranslateToEnglish_RateLimited(t *testing.T) {
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

	_, err := client.TranslateToEnglish(context.Background(), "hola", "es")
	if !errors.Is(err, translate.ErrRateLimitExceeded) {
		t.Fatalf("expected ErrRateLimitExceeded, got %v", err)
	}
}

func TestClient_TranslateToEnglish_ServerError(t *testing.T) {
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

	_, err := client.TranslateToEnglish(context.Background(), "hola", "es")
	if !errors.Is(err, translate.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestIsValidLanguageCode(t *testing.T) {
	valid := []string{"en", "bn", "zh-CN", "pt-BR", "fil"}
	for _, code := range valid {
		if !translate.IsValidLanguageCode(code) {
			t.Errorf("expected %q to be valid", code)
		}
	}
	invalid := []string{"", "e", "english language", "12", "en_US"}
	for _, code := range invalid {
		if translate.IsValidLanguageCode(code) {
			t.Errorf("expected %q to be invalid", code)
		}
	}
}
