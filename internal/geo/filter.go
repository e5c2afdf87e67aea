package geo

import (
	"cmp"
	"slices"
)

// Located pairs an item with its distance from a radius origin.
type Located[T any] struct {
	Item       T
	DistanceKm float64
}

// RadiusResult is the output of FilterByRadius.
type RadiusResult[T any] struct {
	Kept []Located[T]
	// MissingCoordinates counts items excluded because they had no valid
	// location. Callers surface it so data gaps are visible.
	MissingCoordinates int
}

// FilterByRadius keeps items whose location lies within maxKm of origin.
// Items without a valid location are excluded and counted, never treated
// as (0°N, 0°E). Input order is preserved.
func FilterByRadius[T any](items []T, locate func(T) *Point, origin Point, maxKm float64) RadiusResult[T] {
	res := RadiusResult[T]{Kept: make([]Located[T], 0, len(items))}
	for _, it := range items {
		p := locate(it)
		if !p.Valid() {
			res.MissingCoordinates++
			continue
		}
		d := HaversineKm(*p, origin)
		if d <= maxKm {
			res.Kept = append(res.Kept, Located[T]{Item: it, DistanceKm: d})
		}
	}
	return res
}

// SortByDistance orders located items by ascending distance, breaking ties
// by ascending id so that pages are stable across requests.
func SortByDistance[T any](items []Located[T], id func(T) int64) {
	slices.SortStableFunc(items, func(a, b Located[T]) int {
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		return cmp.Compare(id(a.Item), id(b.Item))
	})
}
