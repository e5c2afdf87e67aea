package usecase

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"funnel-metrics-service/internal/geo"
	"funnel-metrics-service/internal/logging"
	"funnel-metrics-service/internal/observability"
	"funnel-metrics-service/internal/ranking/core/domain"
	"funnel-metrics-service/internal/ranking/core/ports"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidPage     = errors.New("invalid page")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidSortDir  = errors.New("invalid sort direction")
	ErrInvalidOrigin   = errors.New("invalid origin")
	ErrInvalidRadius   = errors.New("invalid radius")
	ErrOriginRequired  = errors.New("distance needs an origin")
	ErrInvalidStatus   = errors.New("invalid status filter")
)

type RankInput struct {
	Query    domain.Query
	Sort     domain.SortField
	Dir      domain.SortDir
	Page     int
	PageSize int
}

type Options struct {
	// DerivedSortCeiling bounds the candidate set materialized for a
	// derived sort or radius filter.
	DerivedSortCeiling int
	MaxPageSize        int
}

type RankAndPageUseCase struct {
	source ports.EntitySourcePort
	schema domain.Schema
	opts   Options
}

func NewRankAndPageUseCase(source ports.EntitySourcePort, schema domain.Schema, opts Options) *RankAndPageUseCase {
	return &RankAndPageUseCase{source: source, schema: schema, opts: opts}
}

// Execute ranks and pages workers. Stored sorts are pushed down to the
// source; derived sorts and radius filters rank the whole candidate set in
// memory. Both paths order ties by id ascending, so they return the same
// page for the same data.
func (uc *RankAndPageUseCase) Execute(ctx context.Context, in RankInput) (*domain.PageResult, error) {
	kind, err := uc.validate(&in)
	if err != nil {
		return nil, err
	}

	if kind == domain.Derived || in.Query.Radius() {
		observability.RankRequestsTotal.WithLabelValues(string(domain.ModeDerived)).Inc()
		return uc.derived(ctx, in)
	}
	observability.RankRequestsTotal.WithLabelValues(string(domain.ModeStored)).Inc()
	return uc.stored(ctx, in)
}

func (uc *RankAndPageUseCase) validate(in *RankInput) (domain.SortKind, error) {
	if in.Page < 1 {
		return 0, ErrInvalidPage
	}
	if in.PageSize < 1 || (uc.opts.MaxPageSize > 0 && in.PageSize > uc.opts.MaxPageSize) {
		return 0, ErrInvalidPageSize
	}
	if in.Dir == "" {
		in.Dir = domain.Desc
	}
	if !in.Dir.Valid() {
		return 0, ErrInvalidSortDir
	}
	switch in.Query.Status {
	case "":
		in.Query.Status = domain.StatusAll
	case domain.StatusAll, domain.StatusActive, domain.StatusSuspended:
	default:
		return 0, ErrInvalidStatus
	}
	if in.Query.Search != nil {
		s := strings.TrimSpace(*in.Query.Search)
		if s == "" {
			in.Query.Search = nil
		} else {
			in.Query.Search = &s
		}
	}

	kind, err := uc.schema.Kind(in.Sort)
	if err != nil {
		return 0, err
	}

	if in.Query.Origin != nil && !in.Query.Origin.Valid() {
		return 0, ErrInvalidOrigin
	}
	if in.Query.MaxKm != nil {
		if in.Query.Origin == nil {
			return 0, ErrOriginRequired
		}
		if *in.Query.MaxKm <= 0 {
			return 0, ErrInvalidRadius
		}
	}
	if in.Sort == domain.SortDistance && in.Query.Origin == nil {
		return 0, ErrOriginRequired
	}
	return kind, nil
}

func (uc *RankAndPageUseCase) stored(ctx context.Context, in RankInput) (*domain.PageResult, error) {
	var (
		total   int64
		workers []domain.Worker
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = uc.source.CountEntities(gctx, in.Query)
		return err
	})
	g.Go(func() error {
		var err error
		workers, err = uc.source.FetchEntityPage(gctx, in.Query, ports.PageRequest{
			Sort:   in.Sort,
			Dir:    in.Dir,
			Offset: (in.Page - 1) * in.PageSize,
			Limit:  in.PageSize,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows, err := uc.withStats(ctx, workers)
	if err != nil {
		return nil, err
	}
	if in.Query.Origin != nil {
		for i := range rows {
			rows[i].DistanceKm = distance(rows[i].Location, *in.Query.Origin)
		}
	}

	return uc.result(in, domain.ModeStored, rows, total, 0), nil
}

func (uc *RankAndPageUseCase) derived(ctx context.Context, in RankInput) (*domain.PageResult, error) {
	count, err := uc.source.CountEntities(ctx, in.Query)
	if err != nil {
		return nil, err
	}
	if err := uc.checkCeiling(in.Sort, count); err != nil {
		return nil, err
	}

	// One more than the ceiling so growth between the two reads is caught.
	// Without a ceiling the source is read in full.
	limit := 0
	if uc.opts.DerivedSortCeiling > 0 {
		limit = uc.opts.DerivedSortCeiling + 1
	}
	workers, err := uc.source.FetchAllEntities(ctx, in.Query, limit)
	if err != nil {
		return nil, err
	}
	if err := uc.checkCeiling(in.Sort, int64(len(workers))); err != nil {
		return nil, err
	}

	rows, err := uc.withStats(ctx, workers)
	if err != nil {
		return nil, err
	}

	missing := 0
	if origin := in.Query.Origin; origin != nil {
		if in.Query.Radius() {
			res := geo.FilterByRadius(rows, func(r domain.RankedWorker) *geo.Point { return r.Location }, *origin, *in.Query.MaxKm)
			missing = res.MissingCoordinates
			rows = lo.Map(res.Kept, func(l geo.Located[domain.RankedWorker], _ int) domain.RankedWorker {
				d := l.DistanceKm
				l.Item.DistanceKm = &d
				return l.Item
			})
		} else {
			for i := range rows {
				rows[i].DistanceKm = distance(rows[i].Location, *origin)
			}
		}
	}
	if missing > 0 {
		observability.MissingCoordinatesTotal.Add(float64(missing))
		logging.Warn().Int("missing_coordinates", missing).Msg("workers without location excluded from radius search")
	}

	slices.SortStableFunc(rows, comparator(in.Sort, in.Dir))

	total := int64(len(rows))
	start := min((in.Page-1)*in.PageSize, len(rows))
	end := min(start+in.PageSize, len(rows))
	page := slices.Clone(rows[start:end])

	return uc.result(in, domain.ModeDerived, page, total, missing), nil
}

func (uc *RankAndPageUseCase) checkCeiling(field domain.SortField, candidates int64) error {
	if uc.opts.DerivedSortCeiling <= 0 || candidates <= int64(uc.opts.DerivedSortCeiling) {
		return nil
	}
	observability.DerivedSortRejectedTotal.Inc()
	logging.Warn().
		Str("sort", string(field)).
		Int64("candidates", candidates).
		Int("ceiling", uc.opts.DerivedSortCeiling).
		Msg("derived sort rejected")
	return &domain.UnboundedDerivedSortError{Field: field, Candidates: candidates, Ceiling: uc.opts.DerivedSortCeiling}
}

func (uc *RankAndPageUseCase) withStats(ctx context.Context, workers []domain.Worker) ([]domain.RankedWorker, error) {
	rows := make([]domain.RankedWorker, len(workers))
	if len(workers) == 0 {
		return rows, nil
	}

	stats, err := uc.source.FetchEntityStats(ctx, lo.Map(workers, func(w domain.Worker, _ int) int64 { return w.ID }))
	if err != nil {
		return nil, err
	}
	for i, w := range workers {
		rows[i] = domain.RankedWorker{Worker: w, Stats: stats[w.ID]}
	}
	return rows, nil
}

func (uc *RankAndPageUseCase) result(in RankInput, mode domain.Mode, rows []domain.RankedWorker, total int64, missing int) *domain.PageResult {
	return &domain.PageResult{
		Rows:               rows,
		Total:              total,
		TotalPages:         int((total + int64(in.PageSize) - 1) / int64(in.PageSize)),
		Page:               in.Page,
		PageSize:           in.PageSize,
		Mode:               mode,
		MissingCoordinates: missing,
	}
}

func distance(p *geo.Point, origin geo.Point) *float64 {
	if !p.Valid() {
		return nil
	}
	d := geo.HaversineKm(*p, origin)
	return &d
}

// comparator orders by field in dir, then by id ascending. Rows without a
// distance sort after every row that has one, in both directions.
func comparator(field domain.SortField, dir domain.SortDir) func(a, b domain.RankedWorker) int {
	sign := 1
	if dir == domain.Desc {
		sign = -1
	}
	return func(a, b domain.RankedWorker) int {
		var c int
		switch field {
		case domain.SortName:
			c = sign * cmp.Compare(a.Name, b.Name)
		case domain.SortCreatedAt:
			c = sign * a.CreatedAt.Compare(b.CreatedAt)
		case domain.SortAvgRating:
			c = sign * cmp.Compare(a.AvgRating, b.AvgRating)
		case domain.SortReviewCount:
			c = sign * cmp.Compare(a.ReviewCount, b.ReviewCount)
		case domain.SortTotalWorkCount:
			c = sign * cmp.Compare(a.TotalWorkCount, b.TotalWorkCount)
		case domain.SortDistance:
			switch {
			case a.DistanceKm == nil && b.DistanceKm == nil:
			case a.DistanceKm == nil:
				c = 1
			case b.DistanceKm == nil:
				c = -1
			default:
				c = sign * cmp.Compare(*a.DistanceKm, *b.DistanceKm)
			}
		case domain.SortID:
			c = sign * cmp.Compare(a.ID, b.ID)
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}
}
