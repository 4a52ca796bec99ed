// Package identity proxies fiscal-code validation to an external verifier.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/medibook/booking-api/pkg/logging"
)

// ValidationResult is the verifier's verdict.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Client calls the external fiscal-code verification service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a validation client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks a fiscal code. Any failure reaching the verifier degrades
// to an invalid verdict with an explanatory note; validation is advisory and
// must not fail the caller's flow.
func (c *Client) Validate(ctx context.Context, code string) ValidationResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?cf="+url.QueryEscape(code), nil)
	if err != nil {
		return ValidationResult{Valid: false, Error: "external service error"}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("fiscal code verifier unreachable", "error", err)
		return ValidationResult{Valid: false, Error: "external service error"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("fiscal code verifier returned error status", "status", resp.StatusCode)
		return ValidationResult{Valid: false, Error: fmt.Sprintf("external service status %d", resp.StatusCode)}
	}

	var result ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ValidationResult{Valid: false, Error: "external service error"}
	}
	return result
}

// Handler exposes validation over HTTP.
type Handler struct {
	client *Client
}

// NewHandler creates a validation handler.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Validate handles GET /api/validate-cf?cf=...
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("cf")
	if code == "" {
		http.Error(w, "cf required", http.StatusBadRequest)
		return
	}

	result := h.client.Validate(r.Context(), code)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
