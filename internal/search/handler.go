package search

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/medibook/booking-api/internal/geo"
	"github.com/medibook/booking-api/pkg/logging"
)

// SearchRequest is the POST /api/search body. Window timestamps are RFC 3339.
type SearchRequest struct {
	Address     string  `json:"address"`
	RadiusKm    float64 `json:"radiusKm"`
	WindowStart string  `json:"windowStart"`
	WindowEnd   string  `json:"windowEnd"`
}

// SearchResponse is the POST /api/search reply.
type SearchResponse struct {
	Success      bool         `json:"success"`
	UserLocation geo.Location `json:"userLocation"`
	Results      []ScoredSlot `json:"results"`
	Error        string       `json:"error,omitempty"`
}

// Handler exposes the search pipeline over HTTP.
type Handler struct {
	service         *Service
	defaultWindow   time.Duration
	defaultRadiusKm float64
	logger          *logging.Logger
}

// NewHandler creates a search handler. defaultWindow bounds the window end
// when the request omits or mangles it; defaultRadiusKm substitutes for a
// missing or non-positive radius.
func NewHandler(service *Service, defaultWindow time.Duration, defaultRadiusKm float64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultWindow <= 0 {
		defaultWindow = 14 * 24 * time.Hour
	}
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = DefaultRadiusKm
	}
	return &Handler{service: service, defaultWindow: defaultWindow, defaultRadiusKm: defaultRadiusKm, logger: logger}
}

// Search handles POST /api/search. Malformed windows and radii are clamped to
// defaults rather than rejected; only a slot store failure fails the request.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode search request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	criteria := Criteria{
		Address:  req.Address,
		RadiusKm: req.RadiusKm,
	}
	if criteria.RadiusKm <= 0 {
		criteria.RadiusKm = h.defaultRadiusKm
	}
	criteria.WindowStart, criteria.WindowEnd = h.window(req.WindowStart, req.WindowEnd)

	result, err := h.service.Search(r.Context(), criteria)
	if err != nil {
		h.logger.Error("search failed", "error", err)
		writeJSON(w, http.StatusBadGateway, SearchResponse{
			Success: false,
			Error:   "slot service unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Success:      true,
		UserLocation: result.UserLocation,
		Results:      result.Slots,
	})
}

// window coerces the requested window: an unusable start becomes now, an
// unusable or inverted end becomes start plus the default window.
func (h *Handler) window(startRaw, endRaw string) (time.Time, time.Time) {
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		start = time.Now().UTC()
	}
	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil || end.Before(start) {
		end = start.Add(h.defaultWindow)
	}
	return start, end
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
