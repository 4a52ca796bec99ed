// Package search orchestrates the slot search pipeline: geocode the address,
// fetch candidate slots, filter and rank them by distance.
package search

import (
	"math"
	"sort"

	"github.com/medibook/booking-api/internal/geo"
	"github.com/medibook/booking-api/internal/slots"
)

// DefaultRadiusKm applies when the caller omits the radius or supplies a
// non-positive one.
const DefaultRadiusKm = 50.0

const earthRadiusKm = 6371.0

// ScoredSlot is a slot annotated with its great-circle distance from the
// search origin. It is a derived view and is never persisted.
type ScoredSlot struct {
	slots.Slot
	DistanceKm float64 `json:"distance"`
}

// Distance computes the haversine great-circle distance in kilometers.
// Any non-finite input makes the points unreachable from each other.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	for _, v := range []float64{lat1, lon1, lat2, lon2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.Inf(1)
		}
	}

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Filter retains slots whose clinic lies within radiusKm of origin, inclusive,
// sorted ascending by distance. The sort is stable so equidistant slots keep
// their input order. Slots without usable coordinates are dropped rather than
// breaking the comparison. Distances are reported rounded to two decimals and
// the rounded value is what the radius is checked against, matching the wire
// format.
func Filter(candidates []slots.Slot, origin geo.Location, radiusKm float64) []ScoredSlot {
	if radiusKm <= 0 {
		radiusKm = DefaultRadiusKm
	}

	scored := []ScoredSlot{}
	for _, sl := range candidates {
		if sl.Latitude == nil || sl.Longitude == nil {
			continue
		}
		d := Distance(origin.Latitude, origin.Longitude, *sl.Latitude, *sl.Longitude)
		if math.IsInf(d, 1) {
			continue
		}
		d = math.Round(d*100) / 100
		if d > radiusKm {
			continue
		}
		scored = append(scored, ScoredSlot{Slot: sl, DistanceKm: d})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].DistanceKm < scored[j].DistanceKm
	})
	return scored
}
