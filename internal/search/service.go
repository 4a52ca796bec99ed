package search

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/medibook/booking-api/internal/geo"
	"github.com/medibook/booking-api/internal/observability/metrics"
	"github.com/medibook/booking-api/internal/slots"
	"github.com/medibook/booking-api/pkg/logging"
)

var searchTracer = otel.Tracer("medibook.internal.search")

// SlotFinder is the slice of the slot store the orchestrator depends on.
type SlotFinder interface {
	FindFree(ctx context.Context, windowStart, windowEnd time.Time) ([]slots.Slot, error)
}

// AddressResolver resolves an address to coordinates, falling back to a
// default location instead of failing.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) geo.Location
	DefaultLocation() geo.Location
}

// Criteria is the search input, immutable once built by the handler.
type Criteria struct {
	Address     string
	RadiusKm    float64
	WindowStart time.Time
	WindowEnd   time.Time
}

// Result pairs the location the search was centered on with the scored slots,
// so callers can render both.
type Result struct {
	UserLocation geo.Location
	Slots        []ScoredSlot
}

// Service runs the search pipeline. Geocoding failures degrade to the default
// location; a slot store failure is fatal to the request because there is no
// meaningful result without data.
type Service struct {
	resolver AddressResolver
	store    SlotFinder
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

// NewService constructs a search service. metrics may be nil.
func NewService(resolver AddressResolver, store SlotFinder, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if resolver == nil {
		panic("search: resolver required")
	}
	if store == nil {
		panic("search: slot store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{resolver: resolver, store: store, metrics: m, logger: logger}
}

// Search executes resolve -> fetch -> filter and returns the composed result.
func (s *Service) Search(ctx context.Context, c Criteria) (*Result, error) {
	ctx, span := searchTracer.Start(ctx, "search.pipeline", trace.WithAttributes(
		attribute.Float64("medibook.radius_km", c.RadiusKm),
		attribute.Bool("medibook.has_address", c.Address != ""),
	))
	defer span.End()
	started := time.Now()

	origin := s.resolver.Resolve(ctx, c.Address)

	candidates, err := s.store.FindFree(ctx, c.WindowStart, c.WindowEnd)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveSearch("upstream_error", time.Since(started).Seconds(), 0)
		return nil, fmt.Errorf("search: fetch candidate slots: %w", err)
	}

	scored := Filter(candidates, origin, c.RadiusKm)
	span.SetAttributes(
		attribute.Int("medibook.candidates", len(candidates)),
		attribute.Int("medibook.results", len(scored)),
	)
	s.metrics.ObserveSearch("ok", time.Since(started).Seconds(), len(scored))
	s.logger.Info("search completed",
		"candidates", len(candidates),
		"results", len(scored),
		"lat", origin.Latitude,
		"lng", origin.Longitude,
	)

	return &Result{UserLocation: origin, Slots: scored}, nil
}
