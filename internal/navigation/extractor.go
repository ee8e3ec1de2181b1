package navigation

import (
	"regexp"
	"strings"
)

// placePatterns are the command phrasings users actually say, checked in
// order. The first match wins; the captured remainder is the place query.
var placePatterns = []*regexp.Regexp{
	regexp.MustCompile(`take me to (.+)`),
	regexp.MustCompile(`go to (.+)`),
	regexp.MustCompile(`navigate to (.+)`),
	regexp.MustCompile(`direction to (.+)`),
	regexp.MustCompile(`find (.+)`),
	regexp.MustCompile(`show me (.+)`),
	regexp.MustCompile(`where is (.+)`),
	regexp.MustCompile(`how do i get to (.+)`),
	regexp.MustCompile(`how to reach (.+)`),
	regexp.MustCompile(`route to (.+)`),
	regexp.MustCompile(`i want to go to (.+)`),
	regexp.MustCompile(`i need to go to (.+)`),
}

// ExtractPlace derives a destination query from free-form English text.
// Matching is case-insensitive and best-effort: when no phrasing matches, the
// trimmed input is returned verbatim on the assumption the user spoke a bare
// place name. Returns ok=false only for empty input.
func ExtractPlace(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}

	lowered := strings.ToLower(trimmed)
	for _, pattern := range placePatterns {
		m := pattern.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}
		place := strings.TrimSpace(m[1])
		place = strings.TrimRight(place, "?.!,")
		place = strings.TrimSpace(place)
		if place != "" {
			return place, true
		}
	}

	return trimmed, true
}
