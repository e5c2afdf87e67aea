package fiber

import (
	"context"
	"errors"
	"net/http"

	"funnel-metrics-service/internal/geo"
	"funnel-metrics-service/internal/httpx"
	"funnel-metrics-service/internal/ranking/core/domain"
	"funnel-metrics-service/internal/ranking/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type RankAndPageUseCase interface {
	Execute(ctx context.Context, in usecase.RankInput) (*domain.PageResult, error)
}

type RankingHandler struct {
	uc              RankAndPageUseCase
	defaultPageSize int
}

func NewRankingHandler(uc RankAndPageUseCase, defaultPageSize int) *RankingHandler {
	return &RankingHandler{uc: uc, defaultPageSize: defaultPageSize}
}

// ListWorkers godoc
// @Summary Ranked worker listing
// @Description Pages workers sorted by a stored column or a derived statistic. Derived sorts and radius searches rank the whole candidate set and are rejected with 422 above the configured ceiling.
// @Tags Rankings
// @Produce json
// @Param page query int false "Page (1-based)" default(1)
// @Param page_size query int false "Page size"
// @Param sort query string false "id | name | created_at | avg_rating | review_count | total_work_count | distance" default(created_at)
// @Param order query string false "asc | desc" default(desc)
// @Param search query string false "Name, email, phone or id"
// @Param prefecture query string false "Prefecture"
// @Param city query string false "City"
// @Param status query string false "all | active | suspended"
// @Param lat query number false "Origin latitude"
// @Param lng query number false "Origin longitude"
// @Param max_km query number false "Radius in km (needs lat/lng)"
// @Success 200 {object} WorkerPageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /rankings/workers [get]
func (h *RankingHandler) ListWorkers(c *fiber.Ctx) error {
	in := usecase.RankInput{
		Sort:     domain.SortField(c.Query("sort", string(domain.SortCreatedAt))),
		Dir:      domain.SortDir(c.Query("order", string(domain.Desc))),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", h.defaultPageSize),
		Query: domain.Query{
			Search:     httpx.OptionalString(c, "search"),
			Prefecture: httpx.OptionalString(c, "prefecture"),
			City:       httpx.OptionalString(c, "city"),
			Status:     domain.StatusFilter(c.Query("status", string(domain.StatusAll))),
		},
	}

	lat, err := httpx.OptionalFloat(c, "lat")
	if err != nil {
		return httpx.BadRequest(c, "invalid_query", err)
	}
	lng, err := httpx.OptionalFloat(c, "lng")
	if err != nil {
		return httpx.BadRequest(c, "invalid_query", err)
	}
	if (lat == nil) != (lng == nil) {
		return httpx.BadRequest(c, "invalid_query", errors.New("lat and lng must be given together"))
	}
	if lat != nil {
		in.Query.Origin = &geo.Point{Lat: *lat, Lng: *lng}
	}
	if in.Query.MaxKm, err = httpx.OptionalFloat(c, "max_km"); err != nil {
		return httpx.BadRequest(c, "invalid_query", err)
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnboundedDerivedSort):
			return httpx.Unprocessable(c, "derived_sort_too_large", err)
		case errors.Is(err, usecase.ErrInvalidPage),
			errors.Is(err, usecase.ErrInvalidPageSize),
			errors.Is(err, usecase.ErrInvalidSortDir),
			errors.Is(err, usecase.ErrInvalidOrigin),
			errors.Is(err, usecase.ErrInvalidRadius),
			errors.Is(err, usecase.ErrOriginRequired),
			errors.Is(err, usecase.ErrInvalidStatus),
			errors.Is(err, domain.ErrUnknownSortField):
			return httpx.BadRequest(c, "invalid_query", err)
		default:
			return httpx.Internal(c, err)
		}
	}

	return c.Status(http.StatusOK).JSON(toWorkerPageResponse(res))
}
