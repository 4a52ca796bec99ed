package otp

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/medibook/booking-api/pkg/logging"
)

// Handler exposes OTP issue/verify over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates an OTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

type sendRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type statusResponse struct {
	Success bool `json:"success"`
}

// Send handles POST /api/otp/send.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		http.Error(w, "email required", http.StatusBadRequest)
		return
	}

	if err := h.service.Send(r.Context(), req.Email); err != nil {
		h.logger.Error("OTP send failed", "error", err, "email", req.Email)
		writeJSON(w, http.StatusInternalServerError, statusResponse{Success: false})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Success: true})
}

// Verify handles POST /api/otp/verify. Wrong codes are a normal outcome and
// answer 200 with success=false.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ok := h.service.Verify(r.Context(), strings.TrimSpace(req.Email), strings.TrimSpace(req.Code))
	writeJSON(w, http.StatusOK, statusResponse{Success: ok})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
