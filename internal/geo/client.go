// Package geo resolves free-text addresses against a Nominatim-compatible
// geocoding provider.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/medibook/booking-api/pkg/logging"
)

// Location is a WGS84 coordinate pair.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// place mirrors the provider's search/reverse payload. Nominatim encodes
// coordinates as strings.
type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Road  string `json:"road"`
		City  string `json:"city"`
		Town  string `json:"town"`
		State string `json:"state"`
	} `json:"address"`
}

// Client is an HTTP client for the geocoding provider.
type Client struct {
	baseURL    string
	userAgent  string
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

// WithUserAgent sets the User-Agent sent to the provider. Nominatim's usage
// policy requires an identifying agent.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a geocoding client. baseURL is the provider root
// (e.g. "https://nominatim.openstreetmap.org").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   baseURL,
		userAgent: "MedicalBooking/1.0",
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

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("geo: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geo: provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geo: provider returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("geo: decode provider response: %w", err)
	}
	return nil
}

// search queries the provider for a free-text address and returns up to limit
// candidates.
func (c *Client) search(ctx context.Context, query string, limit int) ([]place, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var places []place
	if err := c.get(ctx, "/search", params, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// Reverse resolves coordinates to a display address. An empty display name
// becomes "Unknown address" so callers always render something.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	var p place
	if err := c.get(ctx, "/reverse", params, &p); err != nil {
		return "", err
	}
	if p.DisplayName == "" {
		return "Unknown address", nil
	}
	return p.DisplayName, nil
}

// Autocomplete returns deduplicated address suggestions for a partial query.
// Queries shorter than 3 characters and provider failures both yield an empty
// list; suggestions are advisory.
func (c *Client) Autocomplete(ctx context.Context, text, countryCodes string) []string {
	if len(text) < 3 {
		return []string{}
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", text)
	params.Set("addressdetails", "1")
	params.Set("limit", "5")
	if countryCodes != "" {
		params.Set("countrycodes", countryCodes)
	}

	var places []place
	if err := c.get(ctx, "/search", params, &places); err != nil {
		c.logger.Warn("autocomplete lookup failed", "error", err, "text", text)
		return []string{}
	}

	seen := make(map[string]struct{})
	suggestions := []string{}
	for _, p := range places {
		city := p.Address.City
		if city == "" {
			city = p.Address.Town
		}
		var parts []string
		for _, part := range []string{p.Address.Road, city, p.Address.State} {
			if part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) == 0 {
			continue
		}
		s := strings.Join(parts, ", ")
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		suggestions = append(suggestions, s)
	}
	return suggestions
}
