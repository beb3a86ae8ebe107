// Package geo ranks candidates by great-circle distance from a reference point.
package geo

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// EarthRadiusKm is the mean earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// ErrInvalidCoordinate is returned when a coordinate is missing, out of range or not a number.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a WGS-84 point in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the coordinate is finite and within range.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinate, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}

// FromNullable builds a coordinate from optional database columns.
// ok is false when either column is NULL.
func FromNullable(lat, lon *float64) (Coordinate, bool) {
	if lat == nil || lon == nil {
		return Coordinate{}, false
	}
	return Coordinate{Latitude: *lat, Longitude: *lon}, true
}

// Distance returns the haversine distance between a and b in kilometers.
func Distance(a, b Coordinate) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	// rounding can push h just outside [0, 1] for antipodal points
	h = math.Min(1, math.Max(0, h))

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Candidate is an identified record with an optional location.
type Candidate struct {
	ID         string
	Coordinate *Coordinate
}

// RankedCandidate is a Candidate annotated with its distance from the reference point.
type RankedCandidate struct {
	Candidate
	DistanceKm float64
}

// Ranked pairs an arbitrary item with its distance from the reference point.
type Ranked[T any] struct {
	Item       T
	DistanceKm float64
}

// Rank orders candidates nearest-first from ref. Candidates without a valid
// coordinate are left out. Candidates at equal distance keep their input order.
func Rank(ref Coordinate, candidates []Candidate) ([]RankedCandidate, error) {
	ranked, err := RankBy(ref, candidates, func(c Candidate) (Coordinate, bool) {
		if c.Coordinate == nil {
			return Coordinate{}, false
		}
		return *c.Coordinate, true
	})
	if err != nil {
		return nil, err
	}

	out := make([]RankedCandidate, len(ranked))
	for i, r := range ranked {
		out[i] = RankedCandidate{Candidate: r.Item, DistanceKm: r.DistanceKm}
	}
	return out, nil
}

// RankBy is Rank for any item type. coordOf reports the item's location and
// whether it has one.
func RankBy[T any](ref Coordinate, items []T, coordOf func(T) (Coordinate, bool)) ([]Ranked[T], error) {
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("geo: reference point: %w", err)
	}

	ranked := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		c, ok := coordOf(item)
		if !ok || c.Validate() != nil {
			continue
		}
		ranked = append(ranked, Ranked[T]{Item: item, DistanceKm: Distance(ref, c)})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked[T]) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		default:
			return 0
		}
	})

	return ranked, nil
}
