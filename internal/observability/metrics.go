// Package observability registers the Prometheus collectors shared by the
// report usecases and the HTTP layer.
package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DroppedFactsTotal counts leaf facts whose entity is not in the catalog.
	DroppedFactsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "funnel_dropped_facts_total",
			Help: "Leaf facts dropped because their entity is unknown or inactive",
		},
	)

	DerivedSortRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "funnel_derived_sort_rejected_total",
			Help: "Derived-sort requests rejected for exceeding the candidate ceiling",
		},
	)

	MissingCoordinatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "funnel_missing_coordinates_total",
			Help: "Entities excluded from radius filters because they had no location",
		},
	)

	RankRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_rank_requests_total",
			Help: "Ranking requests by execution mode",
		},
		[]string{"mode"},
	)

	// SkippedRecordsTotal counts stored rows left out of a report because
	// they lack a field the report needs.
	SkippedRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_skipped_records_total",
			Help: "Stored records skipped by a report because they were incomplete",
		},
		[]string{"report"},
	)

	IntegrityErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_integrity_errors_total",
			Help: "Computations aborted by invalid input records",
		},
		[]string{"report"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)
)

// RequestMetrics records request counts and latency per matched route.
func RequestMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
