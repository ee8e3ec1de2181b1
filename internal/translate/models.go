// Package translate converts transcribed text to English.
package translate

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// Sentinel errors for translation operations.
var (
	// ErrProviderUnavailable indicates the translation provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("translation provider unavailable")
	// ErrRateLimitExceeded indicates the API quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// Translator defines the interface for translation providers.
type Translator interface {
	// TranslateToEnglish converts text to English. When sourceLang already
	// denotes English the call is an identity transform and performs no
	// network I/O. An empty or unrecognized sourceLang lets the provider
	// detect the language itself.
	TranslateToEnglish(ctx context.Context, text, sourceLang string) (*Translation, error)
	// Name returns the provider identifier for logging and health reporting.
	Name() string
}

// Translation is the result of a translation call.
type Translation struct {
	Text           string // English text
	SourceLanguage string // Detected or confirmed source language; may be empty
}

// langCodeRe matches a plausible BCP-47 language tag (primary subtag plus
// optional region/script subtags).
var langCodeRe = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z0-9]{2,8})*$`)

// IsValidLanguageCode reports whether code looks like a usable language tag.
// Transcription providers occasionally return junk here; unrecognized codes
// are treated as unknown rather than guessed at.
func IsValidLanguageCode(code string) bool {
	return langCodeRe.MatchString(code)
}

// IsEnglish reports whether a language code denotes English.
func IsEnglish(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	return code == "en" || strings.HasPrefix(code, "en-")
}
