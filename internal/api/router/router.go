// Package router wires the HTTP surface: public health/metrics/geo helpers
// and the API-key-protected booking endpoints.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medibook/booking-api/internal/booking"
	"github.com/medibook/booking-api/internal/geo"
	httpmiddleware "github.com/medibook/booking-api/internal/http/middleware"
	"github.com/medibook/booking-api/internal/identity"
	"github.com/medibook/booking-api/internal/otp"
	"github.com/medibook/booking-api/internal/search"
	"github.com/medibook/booking-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	APIKey          string
	SearchHandler   *search.Handler
	BookingHandler  *booking.Handler
	GeoHandler      *geo.Handler
	OTPHandler      *otp.Handler
	IdentityHandler *identity.Handler
	MetricsHandler  http.Handler

	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (health checks, metrics, advisory geo helpers)
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.GeoHandler != nil {
			public.Get("/api/reverse", cfg.GeoHandler.Reverse)
			public.Get("/api/autocomplete", cfg.GeoHandler.Autocomplete)
		}
	})

	// Protected endpoints
	r.Group(func(protected chi.Router) {
		protected.Use(httpmiddleware.APIKey(cfg.APIKey, cfg.Logger))
		protected.Post("/api/search", cfg.SearchHandler.Search)
		protected.Post("/api/book", cfg.BookingHandler.Book)
		if cfg.OTPHandler != nil {
			protected.Post("/api/otp/send", cfg.OTPHandler.Send)
			protected.Post("/api/otp/verify", cfg.OTPHandler.Verify)
		}
		if cfg.IdentityHandler != nil {
			protected.Get("/api/validate-cf", cfg.IdentityHandler.Validate)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
