package domain

import (
	"time"

	"funnel-metrics-service/internal/geo"
)

type Worker struct {
	ID          int64
	Name        string
	Email       string
	Prefecture  *string
	City        *string
	IsSuspended bool
	CreatedAt   time.Time
	Location    *geo.Point
}

// Stats are the derived attributes of a worker.
type Stats struct {
	AvgRating      float64
	ReviewCount    int64
	TotalWorkCount int64
}

type RankedWorker struct {
	Worker
	Stats
	// DistanceKm is set only when the query has an origin and the worker
	// has a valid location.
	DistanceKm *float64
}

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusSuspended StatusFilter = "suspended"
)

// Query holds the filters a record source applies before ranking.
type Query struct {
	Search     *string
	Prefecture *string
	City       *string
	Status     StatusFilter

	// Origin enables distances. With MaxKm it also enables the radius
	// filter.
	Origin *geo.Point
	MaxKm  *float64
}

// Radius reports whether the query filters by distance.
func (q Query) Radius() bool {
	return q.Origin != nil && q.MaxKm != nil
}

type Mode string

const (
	ModeStored  Mode = "stored"
	ModeDerived Mode = "derived"
)

type PageResult struct {
	Rows       []RankedWorker
	Total      int64
	TotalPages int
	Page       int
	PageSize   int
	Mode       Mode
	// MissingCoordinates counts candidates excluded from a radius filter
	// because they had no location.
	MissingCoordinates int
}
