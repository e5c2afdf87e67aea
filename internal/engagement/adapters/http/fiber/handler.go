package fiber

import (
	"context"
	"errors"
	"net/http"

	"funnel-metrics-service/internal/engagement/core/domain"
	"funnel-metrics-service/internal/engagement/core/usecase"
	"funnel-metrics-service/internal/httpx"

	"github.com/gofiber/fiber/v2"
)

type GetEngagementSummaryUseCase interface {
	Execute(ctx context.Context, in usecase.GetEngagementInput) (*domain.Summary, error)
}

type EngagementHandler struct {
	uc GetEngagementSummaryUseCase
}

func NewEngagementHandler(uc GetEngagementSummaryUseCase) *EngagementHandler {
	return &EngagementHandler{uc: uc}
}

// GetEngagement godoc
// @Summary Engagement summary
// @Description Scroll and dwell reach, engagement level distribution and averages, split by CTA interaction.
// @Tags Engagement
// @Produce json
// @Param from query int true "From timestamp (unix seconds)"
// @Param to query int true "To timestamp (unix seconds)"
// @Param entity_id query string false "Restrict to one landing page"
// @Success 200 {object} EngagementResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /engagement [get]
func (h *EngagementHandler) GetEngagement(c *fiber.Ctx) error {
	from, err := httpx.RequiredInt64(c, "from")
	if err != nil {
		return httpx.BadRequest(c, "invalid_query", err)
	}
	to, err := httpx.RequiredInt64(c, "to")
	if err != nil {
		return httpx.BadRequest(c, "invalid_query", err)
	}

	res, err := h.uc.Execute(c.UserContext(), usecase.GetEngagementInput{
		From:     from,
		To:       to,
		EntityID: httpx.OptionalString(c, "entity_id"),
	})
	if err != nil {
		if handled, werr := httpx.DataIntegrity(c, err); handled {
			return werr
		}
		if errors.Is(err, usecase.ErrInvalidTimeRange) || errors.Is(err, usecase.ErrWindowTooLarge) {
			return httpx.BadRequest(c, "invalid_query", err)
		}
		return httpx.Internal(c, err)
	}

	return c.Status(http.StatusOK).JSON(toEngagementResponse(from, to, res))
}
