package fiber

import (
	"context"
	"errors"
	"net/http"

	"funnel-metrics-service/internal/events/core/usecase"
	"funnel-metrics-service/internal/httpx"

	"github.com/gofiber/fiber/v2"
)

type StoreEventUseCase interface {
	Execute(ctx context.Context, in usecase.StoreEventInput) (bool, error)
	BulkCreateEvents(ctx context.Context, in usecase.BulkCreateEventsInput) (usecase.BulkCreateEventsResult, error)
}

type EventHandler struct {
	storeUC  StoreEventUseCase
	maxBatch int
}

// NewEventHandler builds the ingest handler. maxBatch <= 0 leaves bulk
// requests unbounded.
func NewEventHandler(storeUC StoreEventUseCase, maxBatch int) *EventHandler {
	return &EventHandler{storeUC: storeUC, maxBatch: maxBatch}
}

var (
	errEmptyBatch    = errors.New("events must not be empty")
	errBatchTooLarge = errors.New("too many events in one request")
)

// CreateEvent godoc
// @Summary Create a new event
// @Description Stores a single tracking event with idempotency handling
// @Tags Events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Event payload"
// @Success 201 {object} CreateEventResponse
// @Success 200 {object} CreateEventResponse "Duplicate event"
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest

	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_json", nil)
	}

	created, err := h.storeUC.Execute(c.UserContext(), req.toInput())
	if err != nil {
		return writeStoreError(c, err)
	}

	if !created {
		return c.Status(http.StatusOK).JSON(CreateEventResponse{Status: "duplicate"})
	}
	return c.Status(http.StatusCreated).JSON(CreateEventResponse{Status: "created"})
}

// BulkCreateEvents godoc
// @Summary Bulk create events
// @Description Validates the whole batch, then stores events individually
// @Tags Events
// @Accept json
// @Produce json
// @Param request body BulkCreateEventsRequest true "Bulk event payload"
// @Success 201 {object} BulkCreateEventsResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /events/bulk [post]
func (h *EventHandler) BulkCreateEvents(c *fiber.Ctx) error {
	var req BulkCreateEventsRequest
	if err := c.BodyParser(&req); err != nil {
		return httpx.BadRequest(c, "invalid_json", nil)
	}

	if len(req.Events) == 0 {
		return httpx.BadRequest(c, "events_list_required", errEmptyBatch)
	}
	if h.maxBatch > 0 && len(req.Events) > h.maxBatch {
		return httpx.BadRequest(c, "events_list_too_large", errBatchTooLarge)
	}

	inputs := make([]usecase.StoreEventInput, len(req.Events))
	for i, e := range req.Events {
		inputs[i] = e.toInput()
	}

	result, err := h.storeUC.BulkCreateEvents(
		c.UserContext(),
		usecase.BulkCreateEventsInput{Events: inputs},
	)
	if err != nil {
		return writeStoreError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(BulkCreateEventsResponse{
		Created:    result.Created,
		Duplicates: result.Duplicates,
	})
}

func writeStoreError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidEvent),
		errors.Is(err, usecase.ErrFutureTime):
		return httpx.BadRequest(c, "invalid_event", err)
	default:
		return httpx.Internal(c, err)
	}
}
