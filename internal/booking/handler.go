package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medibook/booking-api/internal/slots"
	"github.com/medibook/booking-api/pkg/logging"
)

// BookRequest is the POST /api/book body.
type BookRequest struct {
	SlotID int64  `json:"slotId"`
	Email  string `json:"email"`
}

// BookResponse is the POST /api/book reply.
type BookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Handler exposes booking over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a booking handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Book handles POST /api/book. An occupied slot is a normal outcome and
// answers 200 with success=false; only an unknown id is a 404 and only a
// storage fault is an HTTP error.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode book request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.SlotID <= 0 {
		http.Error(w, "slotId required", http.StatusBadRequest)
		return
	}

	err := h.service.Book(r.Context(), req.SlotID, req.Email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, BookResponse{Success: true})
	case errors.Is(err, slots.ErrAlreadyBooked):
		writeJSON(w, http.StatusOK, BookResponse{Success: false, Message: "Slot occupied"})
	case errors.Is(err, slots.ErrNotFound):
		writeJSON(w, http.StatusNotFound, BookResponse{Success: false, Message: "Slot not found"})
	default:
		h.logger.Error("booking failed", "error", err, "slot_id", req.SlotID)
		writeJSON(w, http.StatusBadGateway, BookResponse{Success: false, Message: "booking service unavailable"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
