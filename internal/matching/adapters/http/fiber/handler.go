package fiber

import (
	"context"
	"errors"
	"net/http"

	"funnel-metrics-service/internal/httpx"
	"funnel-metrics-service/internal/matching/core/domain"
	"funnel-metrics-service/internal/matching/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetDurationStatsUseCase interface {
	Execute(ctx context.Context, in usecase.GetDurationStatsInput) (*domain.DurationReport, error)
}

type MatchingHandler struct {
	uc GetDurationStatsUseCase
}

func NewMatchingHandler(uc GetDurationStatsUseCase) *MatchingHandler {
	return &MatchingHandler{uc: uc}
}

// GetDurations godoc
// @Summary Matching duration
// @Description Average hours from job posting to its first matched application, overall and per period. Jobs without a match are counted but excluded from the average.
// @Tags Matching
// @Produce json
// @Param from query int true "From timestamp (unix seconds)"
// @Param to query int true "To timestamp (unix seconds)"
// @Param interval query string false "day | month" default(day)
// @Success 200 {object} DurationReportResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /matching/durations [get]
func (h *MatchingHandler) GetDurations(c *fiber.Ctx) error {
	from, err := httpx.RequiredInt64(c, "from")
	if err != nil {
		return httpx.BadRequest(c, "invalid_query", err)
	}
	to, err := httpx.RequiredInt64(c, "to")
	if err != nil {
		return httpx.BadRequest(c, "invalid_query", err)
	}

	res, err := h.uc.Execute(c.UserContext(), usecase.GetDurationStatsInput{
		From:     from,
		To:       to,
		Interval: domain.Interval(c.Query("interval", string(domain.IntervalDay))),
	})
	if err != nil {
		if handled, werr := httpx.DataIntegrity(c, err); handled {
			return werr
		}
		switch {
		case errors.Is(err, usecase.ErrInvalidTimeRange),
			errors.Is(err, usecase.ErrWindowTooLarge),
			errors.Is(err, domain.ErrInvalidInterval):
			return httpx.BadRequest(c, "invalid_query", err)
		default:
			return httpx.Internal(c, err)
		}
	}

	return c.Status(http.StatusOK).JSON(toDurationReportResponse(res))
}
