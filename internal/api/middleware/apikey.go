package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/guidecane/guidecane/internal/api/models"
)

// APIKeyHeader is the header carrying the shared device credential.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth creates authentication middleware that validates the shared
// device secret. Wearables are provisioned with a single key at assembly
// time; per-device identity travels in the request body, not the credential.
// Requests are rejected before any pipeline work runs.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	keyBytes := []byte(apiKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(APIKeyHeader)
			if provided == "" {
				writeUnauthorized(w, r, "missing API key")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), keyBytes) != 1 {
				writeUnauthorized(w, r, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeUnauthorized writes a 401 Unauthorized response.
// This is implemented directly here to avoid import cycle with response package.
func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	traceID := GetRequestID(r.Context())
	problem := models.NewUnauthorized(traceID, detail)
	problem.Instance = r.URL.Path
	problem.Write(w)
}
