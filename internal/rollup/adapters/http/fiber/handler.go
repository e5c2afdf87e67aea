package fiber

import (
	"context"
	"errors"
	"net/http"

	"funnel-metrics-service/internal/httpx"
	"funnel-metrics-service/internal/rollup/core/domain"
	"funnel-metrics-service/internal/rollup/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetRollupUseCase interface {
	Execute(ctx context.Context, in usecase.GetRollupInput) (*domain.Report, error)
}

type RollupHandler struct {
	uc GetRollupUseCase
}

func NewRollupHandler(uc GetRollupUseCase) *RollupHandler {
	return &RollupHandler{uc: uc}
}

// GetRollup godoc
// @Summary Funnel rollup
// @Description Returns total, per landing page and per campaign funnel metrics. With a filter the whole report is rebuilt from the matching facts.
// @Tags Rollups
// @Produce json
// @Param from query int true "From timestamp (unix seconds)"
// @Param to query int true "To timestamp (unix seconds)"
// @Param entity_id query string false "Restrict to one landing page"
// @Param filter_field query string false "category | sub_entity | entity"
// @Param filter_match query string false "prefix | genre | equals | in"
// @Param filter_value query string false "Filter value; comma separated for match=in"
// @Param include_unknown query bool false "Count facts of unknown landing pages in the total"
// @Success 200 {object} RollupResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /rollups [get]
func (h *RollupHandler) GetRollup(c *fiber.Ctx) error {
	from, err := httpx.RequiredInt64(c, "from")
	if err != nil {
		return httpx.BadRequest(c, "invalid_query", err)
	}
	to, err := httpx.RequiredInt64(c, "to")
	if err != nil {
		return httpx.BadRequest(c, "invalid_query", err)
	}
	includeUnknown, err := httpx.OptionalBool(c, "include_unknown")
	if err != nil {
		return httpx.BadRequest(c, "invalid_query", err)
	}

	in := usecase.GetRollupInput{
		From:                   from,
		To:                     to,
		EntityID:               httpx.OptionalString(c, "entity_id"),
		IncludeUnknownEntities: includeUnknown,
	}

	if field := c.Query("filter_field"); field != "" {
		values := httpx.List(c, "filter_value")
		match := domain.MatchKind(c.Query("filter_match", string(domain.MatchEquals)))
		if match != domain.MatchIn && len(values) > 1 {
			// a comma is a legal character in a single value
			values = []string{c.Query("filter_value")}
		}
		in.Filter = &domain.FilterPredicate{
			Field:  domain.FilterField(field),
			Match:  match,
			Values: values,
		}
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		if handled, werr := httpx.DataIntegrity(c, err); handled {
			return werr
		}
		switch {
		case errors.Is(err, usecase.ErrInvalidTimeRange),
			errors.Is(err, usecase.ErrWindowTooLarge),
			errors.Is(err, usecase.ErrInvalidEntityID),
			errors.Is(err, domain.ErrInvalidPredicate):
			return httpx.BadRequest(c, "invalid_query", err)
		default:
			return httpx.Internal(c, err)
		}
	}

	return c.Status(http.StatusOK).JSON(toRollupResponse(from, to, res))
}
