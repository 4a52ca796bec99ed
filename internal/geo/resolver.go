package geo

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medibook/booking-api/pkg/logging"
)

// Resolver turns free-text addresses into coordinates. It never fails upward:
// empty input, provider errors, timeouts and unparseable responses all fall
// back to the configured default location, so a broken geocoder degrades a
// search instead of aborting it.
type Resolver struct {
	client     *Client
	cache      *redis.Client
	cacheTTL   time.Duration
	defaultLoc Location
	logger     *logging.Logger
}

// NewResolver creates a resolver. cache may be nil to disable caching;
// resolution behavior is identical either way.
func NewResolver(client *Client, cache *redis.Client, cacheTTL time.Duration, defaultLoc Location, logger *logging.Logger) *Resolver {
	if client == nil {
		panic("geo: client required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{
		client:     client,
		cache:      cache,
		cacheTTL:   cacheTTL,
		defaultLoc: defaultLoc,
		logger:     logger,
	}
}

// DefaultLocation returns the fallback center.
func (r *Resolver) DefaultLocation() Location {
	return r.defaultLoc
}

// Resolve maps an address to coordinates. An empty address returns the
// default location without touching the network.
func (r *Resolver) Resolve(ctx context.Context, address string) Location {
	address = strings.TrimSpace(address)
	if address == "" {
		return r.defaultLoc
	}

	cacheKey := "geocode:" + strings.ToLower(address)
	if loc, ok := r.cached(ctx, cacheKey); ok {
		return loc
	}

	places, err := r.client.search(ctx, address, 1)
	if err != nil {
		r.logger.Warn("geocoding failed, using default location", "error", err, "address", address)
		return r.defaultLoc
	}
	if len(places) == 0 {
		r.logger.Warn("no coordinates found for address, using default location", "address", address)
		return r.defaultLoc
	}

	lat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		r.logger.Warn("provider returned malformed coordinates, using default location", "address", address)
		return r.defaultLoc
	}

	loc := Location{Latitude: lat, Longitude: lng}
	r.store(ctx, cacheKey, loc)
	return loc
}

func (r *Resolver) cached(ctx context.Context, key string) (Location, bool) {
	if r.cache == nil {
		return Location{}, false
	}
	raw, err := r.cache.Get(ctx, key).Bytes()
	if err != nil {
		return Location{}, false
	}
	var loc Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return Location{}, false
	}
	return loc, true
}

func (r *Resolver) store(ctx context.Context, key string, loc Location) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(loc)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, raw, r.cacheTTL).Err(); err != nil {
		r.logger.Warn("geocode cache write failed", "error", err)
	}
}
