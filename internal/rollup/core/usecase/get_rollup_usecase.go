package usecase

import (
	"context"
	"errors"
	"time"

	"funnel-metrics-service/internal/calc"
	"funnel-metrics-service/internal/logging"
	"funnel-metrics-service/internal/observability"
	"funnel-metrics-service/internal/rollup/core/domain"
	"funnel-metrics-service/internal/rollup/core/ports"

	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrWindowTooLarge   = errors.New("time window too large")
	ErrInvalidEntityID  = errors.New("invalid entity id")
)

type GetRollupInput struct {
	From int64 // unix seconds
	To   int64 // unix seconds

	EntityID *string
	Filter   *domain.FilterPredicate

	// IncludeUnknownEntities overrides Options.IncludeUnknownEntities.
	IncludeUnknownEntities *bool
}

type Options struct {
	IncludeUnknownEntities bool
	MaxWindow              time.Duration // 0 = unbounded
}

type GetRollupUseCase struct {
	facts   ports.FactSourcePort
	catalog ports.CatalogPort
	opts    Options
}

func NewGetRollupUseCase(facts ports.FactSourcePort, catalog ports.CatalogPort, opts Options) *GetRollupUseCase {
	return &GetRollupUseCase{facts: facts, catalog: catalog, opts: opts}
}

// Execute validates the input, fetches facts and the catalog concurrently
// and returns a complete rollup, or an error and no rows.
func (uc *GetRollupUseCase) Execute(ctx context.Context, in GetRollupInput) (*domain.Report, error) {
	if in.From <= 0 || in.To <= 0 || in.From > in.To {
		return nil, ErrInvalidTimeRange
	}
	window := domain.Window{From: time.Unix(in.From, 0).UTC(), To: time.Unix(in.To, 0).UTC()}
	if uc.opts.MaxWindow > 0 && window.To.Sub(window.From) > uc.opts.MaxWindow {
		return nil, ErrWindowTooLarge
	}
	if in.EntityID != nil && *in.EntityID == "" {
		return nil, ErrInvalidEntityID
	}
	if in.Filter != nil {
		if err := in.Filter.Validate(); err != nil {
			return nil, err
		}
	}

	var (
		facts   []domain.LeafFact
		catalog domain.Catalog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		facts, err = uc.facts.FetchFacts(gctx, ports.FactQuery{Window: window, EntityID: in.EntityID})
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = uc.catalog.FetchCatalog(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if in.EntityID != nil {
		catalog = catalog.Only(*in.EntityID)
	}

	opts := AggregateOptions{IncludeUnknownEntities: uc.opts.IncludeUnknownEntities}
	if in.IncludeUnknownEntities != nil {
		opts.IncludeUnknownEntities = *in.IncludeUnknownEntities
	}

	var (
		report *domain.Report
		err    error
	)
	if in.Filter != nil {
		report, err = Recompute(facts, catalog, *in.Filter, opts)
	} else {
		report, err = Aggregate(facts, catalog, opts)
	}
	if err != nil {
		if errors.Is(err, calc.ErrDataIntegrity) {
			observability.IntegrityErrorsTotal.WithLabelValues("rollup").Inc()
			logging.Error().Err(err).Msg("rollup aborted on invalid fact")
		}
		return nil, err
	}

	if report.DroppedFacts > 0 {
		observability.DroppedFactsTotal.Add(float64(report.DroppedFacts))
		logging.Warn().
			Int("dropped_facts", report.DroppedFacts).
			Strs("unknown_entities", report.UnknownEntities).
			Bool("included_in_total", opts.IncludeUnknownEntities).
			Msg("facts reference entities missing from the catalog")
	}

	// A caller that gave up gets nothing rather than a report it will not read.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return report, nil
}
