package usecase

import (
	"funnel-metrics-service/internal/rollup/core/domain"

	"github.com/samber/lo"
)

// FilterFacts returns the facts matching p. The input is not modified.
func FilterFacts(facts []domain.LeafFact, p domain.FilterPredicate) []domain.LeafFact {
	return lo.Filter(facts, func(f domain.LeafFact, _ int) bool {
		return p.MatchesFact(f)
	})
}

// FilterCatalog keeps every entity but only the sub-entities matching p.
func FilterCatalog(c domain.Catalog, p domain.FilterPredicate) domain.Catalog {
	out := domain.Catalog{Entities: make([]domain.CatalogEntity, 0, len(c.Entities))}
	for _, e := range c.Entities {
		out.Entities = append(out.Entities, domain.CatalogEntity{
			ID:    e.ID,
			Label: e.Label,
			SubEntities: lo.Filter(e.SubEntities, func(s domain.CatalogSubEntity, _ int) bool {
				return p.MatchesSubEntity(e.ID, s)
			}),
		})
	}
	return out
}

// Recompute rebuilds all three tiers from the leaf facts matching p.
//
// Nothing is derived from an unfiltered report: filtering happens on the
// leaves and the catalog, then Aggregate runs from scratch. An entity is
// reported only if at least one of its sub-entities survives the filter,
// so "filtered out" never shows up as an idle zero row.
func Recompute(facts []domain.LeafFact, catalog domain.Catalog, p domain.FilterPredicate, opts AggregateOptions) (*domain.Report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	opts.pruneIdleEntities = true
	report, err := Aggregate(FilterFacts(facts, p), FilterCatalog(catalog, p), opts)
	if err != nil {
		return nil, err
	}

	pred := p
	report.Filter = &pred
	return report, nil
}
