package usecase

import (
	"fmt"
	"slices"

	"funnel-metrics-service/internal/calc"
	"funnel-metrics-service/internal/rollup/core/domain"

	"github.com/samber/lo"
)

type AggregateOptions struct {
	// IncludeUnknownEntities adds facts of entities missing from the
	// catalog to the total row. No entity row is emitted for them.
	IncludeUnknownEntities bool

	// pruneIdleEntities drops entities left without any sub-entity row.
	// Set only by Recompute.
	pruneIdleEntities bool
}

// Aggregate builds the total / entity / sub-entity rollup from leaf facts.
//
// Only counts are summed. Rates are derived per row from that row's own
// counts. Every configured sub-entity gets a row, zero-filled when it has
// no facts; sub-entities seen in facts but missing from the catalog get a
// row as well so that children always sum to their parent.
func Aggregate(facts []domain.LeafFact, catalog domain.Catalog, opts AggregateOptions) (*domain.Report, error) {
	for i, f := range facts {
		if err := validateFact(i, f); err != nil {
			return nil, err
		}
	}

	known := make(map[string]struct{}, len(catalog.Entities))
	for _, e := range catalog.Entities {
		known[e.ID] = struct{}{}
	}

	knownFacts, unknownFacts := lo.FilterReject(facts, func(f domain.LeafFact, _ int) bool {
		_, ok := known[f.EntityID]
		return ok
	})

	byEntity := lo.GroupBy(knownFacts, func(f domain.LeafFact) string { return f.EntityID })

	report := &domain.Report{
		DroppedFacts: len(unknownFacts),
		UnknownEntities: lo.Uniq(lo.Map(unknownFacts, func(f domain.LeafFact, _ int) string {
			return f.EntityID
		})),
	}
	slices.Sort(report.UnknownEntities)

	var total domain.Counts
	entityRows := make([]domain.Row, 0, len(catalog.Entities)*4)

	for _, e := range catalog.Entities {
		children := buildSubEntityRows(e, byEntity[e.ID])
		if opts.pruneIdleEntities && len(children) == 0 {
			continue
		}

		var sum domain.Counts
		for _, c := range children {
			sum = sum.Plus(c.Metrics)
		}
		total = total.Plus(sum)

		entityRows = append(entityRows, domain.Row{
			Tier:       domain.TierEntity,
			EntityID:   e.ID,
			Label:      e.Label,
			Configured: true,
			Metrics:    sum,
			Rates:      domain.RatesFor(sum),
		})
		entityRows = append(entityRows, children...)
	}

	if opts.IncludeUnknownEntities {
		for _, f := range unknownFacts {
			total.Add(f.Metric, f.Count)
		}
	}

	report.Rows = append([]domain.Row{{
		Tier:       domain.TierTotal,
		Label:      "total",
		Configured: true,
		Metrics:    total,
		Rates:      domain.RatesFor(total),
	}}, entityRows...)

	return report, nil
}

// buildSubEntityRows emits direct first, then configured sub-entities in
// catalog order, then unconfigured ones by id.
func buildSubEntityRows(e domain.CatalogEntity, facts []domain.LeafFact) []domain.Row {
	bySub := make(map[string]domain.Counts)
	for _, f := range facts {
		c := bySub[f.SubEntityKey()]
		c.Add(f.Metric, f.Count)
		bySub[f.SubEntityKey()] = c
	}

	rows := make([]domain.Row, 0, len(e.SubEntities)+len(bySub))
	emitted := make(map[string]struct{}, len(bySub))

	emit := func(id, label string, configured bool) {
		c := bySub[id]
		rows = append(rows, domain.Row{
			Tier:        domain.TierSubEntity,
			EntityID:    e.ID,
			SubEntityID: id,
			Label:       label,
			Configured:  configured,
			Metrics:     c,
			Rates:       domain.RatesFor(c),
		})
		emitted[id] = struct{}{}
	}

	if _, ok := bySub[domain.DirectSubEntity]; ok {
		emit(domain.DirectSubEntity, domain.DirectSubEntity, false)
	}
	for _, s := range e.SubEntities {
		if _, done := emitted[s.ID]; done {
			continue
		}
		emit(s.ID, lo.Ternary(s.Label != "", s.Label, s.ID), true)
	}

	extra := lo.Filter(lo.Keys(bySub), func(id string, _ int) bool {
		_, done := emitted[id]
		return !done
	})
	slices.Sort(extra)
	for _, id := range extra {
		emit(id, id, false)
	}

	return rows
}

func validateFact(i int, f domain.LeafFact) error {
	record := fmt.Sprintf("fact[%d] entity=%q", i, f.EntityID)
	switch {
	case f.EntityID == "":
		return calc.NewDataIntegrityError(record, "missing entity id")
	case !f.Metric.Valid():
		return calc.NewDataIntegrityError(record, "unknown metric %q", f.Metric)
	case f.Count < 0:
		return calc.NewDataIntegrityError(record, "negative count %d", f.Count)
	case f.Start.IsZero():
		return calc.NewDataIntegrityError(record, "missing start timestamp")
	}
	if f.End != nil {
		if _, err := calc.DurationHours(record, f.Start, *f.End); err != nil {
			return err
		}
	}
	return nil
}
