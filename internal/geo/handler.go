package geo

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/medibook/booking-api/pkg/logging"
)

// Handler exposes reverse geocoding and address autocomplete.
type Handler struct {
	client              *Client
	autocompleteCountry string
	logger              *logging.Logger
}

// NewHandler creates a geo handler.
func NewHandler(client *Client, autocompleteCountry string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{client: client, autocompleteCountry: autocompleteCountry, logger: logger}
}

// Reverse handles GET /api/reverse?lat=..&lng=..
func (h *Handler) Reverse(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		http.Error(w, "invalid coordinates", http.StatusBadRequest)
		return
	}

	address, err := h.client.Reverse(r.Context(), lat, lng)
	if err != nil {
		h.logger.Error("reverse geocoding failed", "error", err, "lat", lat, "lng", lng)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "reverse geocoding failed"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"address": address})
}

// Autocomplete handles GET /api/autocomplete?text=..
// Always responds 200 with a (possibly empty) list; suggestions are advisory.
func (h *Handler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	suggestions := h.client.Autocomplete(r.Context(), r.URL.Query().Get("text"), h.autocompleteCountry)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(suggestions)
}
