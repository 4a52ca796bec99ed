package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medibook/booking-api/internal/geo"
	"github.com/medibook/booking-api/internal/slots"
)

type stubResolver struct {
	loc      geo.Location
	fallback geo.Location
	calls    int
}

func (s *stubResolver) Resolve(ctx context.Context, address string) geo.Location {
	s.calls++
	if address == "" {
		return s.fallback
	}
	return s.loc
}

func (s *stubResolver) DefaultLocation() geo.Location { return s.fallback }

type stubFinder struct {
	slots []slots.Slot
	err   error
	start time.Time
	end   time.Time
}

func (s *stubFinder) FindFree(ctx context.Context, windowStart, windowEnd time.Time) ([]slots.Slot, error) {
	s.start, s.end = windowStart, windowEnd
	return s.slots, s.err
}

func TestSearchComposesPipeline(t *testing.T) {
	near := slotAt(1, origin.Latitude+0.09, origin.Longitude)
	far := slotAt(2, origin.Latitude+0.54, origin.Longitude)

	resolver := &stubResolver{loc: origin, fallback: origin}
	finder := &stubFinder{slots: []slots.Slot{far, near}}
	svc := NewService(resolver, finder, nil, nil)

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	result, err := svc.Search(context.Background(), Criteria{
		Address:     "Via Verdi 10",
		RadiusKm:    50,
		WindowStart: start,
		WindowEnd:   end,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if result.UserLocation != origin {
		t.Fatalf("unexpected user location %+v", result.UserLocation)
	}
	if len(result.Slots) != 1 || result.Slots[0].ID != 1 {
		t.Fatalf("expected only the near slot, got %+v", result.Slots)
	}
	if !finder.start.Equal(start) || !finder.end.Equal(end) {
		t.Fatal("window not forwarded to the store")
	}
}

// A dead geocoder degrades the search to the default center; it never aborts.
func TestSearchSurvivesGeocoderFailure(t *testing.T) {
	fallback := geo.Location{Latitude: 46.0697, Longitude: 11.1211}
	resolver := &stubResolver{loc: fallback, fallback: fallback}
	finder := &stubFinder{slots: []slots.Slot{slotAt(1, fallback.Latitude, fallback.Longitude)}}
	svc := NewService(resolver, finder, nil, nil)

	result, err := svc.Search(context.Background(), Criteria{Address: "unresolvable"})
	if err != nil {
		t.Fatalf("Search must not fail on geocoding problems: %v", err)
	}
	if result.UserLocation != fallback {
		t.Fatalf("expected fallback center, got %+v", result.UserLocation)
	}
	if len(result.Slots) != 1 {
		t.Fatalf("expected the slot near the fallback center, got %+v", result.Slots)
	}
}

// A failing slot store is fatal: the caller gets an error, never an empty
// success.
func TestSearchFailsWhenStoreFails(t *testing.T) {
	resolver := &stubResolver{loc: origin, fallback: origin}
	finder := &stubFinder{err: slots.ErrUnavailable}
	svc := NewService(resolver, finder, nil, nil)

	result, err := svc.Search(context.Background(), Criteria{})
	if err == nil {
		t.Fatal("expected error when the slot store is down")
	}
	if !errors.Is(err, slots.ErrUnavailable) {
		t.Fatalf("expected wrapped ErrUnavailable, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
}

func TestSearchEmptyCandidates(t *testing.T) {
	resolver := &stubResolver{loc: origin, fallback: origin}
	finder := &stubFinder{slots: []slots.Slot{}}
	svc := NewService(resolver, finder, nil, nil)

	result, err := svc.Search(context.Background(), Criteria{RadiusKm: 50})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Slots) != 0 {
		t.Fatalf("expected no slots, got %+v", result.Slots)
	}
}
