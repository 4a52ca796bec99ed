package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/medibook/booking-api/pkg/logging"
)

// APIKey guards a route group with a static shared key carried in the
// X-API-Key header. Preflight requests pass through so CORS keeps working.
// An empty configured key rejects everything except preflights.
func APIKey(key string, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			provided := r.Header.Get("X-API-Key")
			if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				logger.Warn("request rejected: missing or invalid API key",
					"path", r.URL.Path,
					"remote_ip", r.RemoteAddr,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized: missing or incorrect API key"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
