package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"funnel-metrics-service/internal/rollup/core/domain"
	"funnel-metrics-service/internal/rollup/core/ports"
	"funnel-metrics-service/internal/sqlstore"
)

// metricSource describes how one funnel metric is counted from the
// tracking events table.
type metricSource struct {
	metric    domain.Metric
	eventName string
	count     string
}

var metricSources = []metricSource{
	{domain.MetricPageView, "page_view", "COUNT(*)"},
	{domain.MetricSession, "page_view", "COUNT(DISTINCT session_id)"},
	{domain.MetricEvent, "click", "COUNT(*)"},
	{domain.MetricRegistration, "registration", "COUNT(*)"},
	{domain.MetricParentJobPV, "job_view", "COUNT(*)"},
	{domain.MetricParentJobSession, "job_view", "COUNT(DISTINCT session_id)"},
	{domain.MetricApplication, "application", "COUNT(*)"},
	{domain.MetricApplicationUser, "application", "COUNT(DISTINCT user_id)"},
}

var selectFactsSQL = buildSelectFactsSQL()

func buildSelectFactsSQL() string {
	parts := make([]string, 0, len(metricSources))
	for _, s := range metricSources {
		parts = append(parts, fmt.Sprintf(`
SELECT entity_id, sub_entity_id, category, '%s' AS metric,
       MIN(event_time) AS first_at, MAX(event_time) AS last_at, %s AS n
FROM scoped
WHERE event_name = '%s'
GROUP BY entity_id, sub_entity_id, category`, s.metric, s.count, s.eventName))
	}

	return `
WITH scoped AS (
    SELECT event_name, entity_id, sub_entity_id, category, session_id, user_id, event_time
    FROM events
    WHERE event_time BETWEEN $1 AND $2
      AND ($3::text IS NULL OR entity_id = $3)
)` + strings.Join(parts, "\nUNION ALL") + `
ORDER BY entity_id, metric`
}

const selectCatalogSQL = `
SELECT lp.id::text, lp.title, c.code, c.name, COALESCE(c.category, c.code)
FROM landing_pages lp
LEFT JOIN lp_campaigns c ON c.lp_id = lp.id AND c.deleted_at IS NULL
WHERE lp.status = 'active'
ORDER BY lp.sort_order, lp.id, c.id`

type FactRepository struct {
	db sqlstore.DB
}

func NewFactRepository(db sqlstore.DB) *FactRepository {
	return &FactRepository{db: db}
}

var (
	_ ports.FactSourcePort = (*FactRepository)(nil)
	_ ports.CatalogPort    = (*FactRepository)(nil)
)

// FetchFacts returns one leaf fact per entity, sub-entity, category and
// metric within the window.
func (r *FactRepository) FetchFacts(ctx context.Context, q ports.FactQuery) ([]domain.LeafFact, error) {
	var entity any
	if q.EntityID != nil {
		entity = *q.EntityID
	}
	args := []any{q.Window.From.UTC(), q.Window.To.UTC(), entity}

	var facts []domain.LeafFact
	err := sqlstore.QueryAll(ctx, r.db, selectFactsSQL, args, func(rows sqlstore.RowScanner) error {
		var (
			f             domain.LeafFact
			sub, category sql.NullString
			metric        string
			lastAt        time.Time
		)
		if err := rows.Scan(&f.EntityID, &sub, &category, &metric, &f.Start, &lastAt, &f.Count); err != nil {
			return err
		}
		f.Metric = domain.Metric(metric)
		f.SubEntityID = nullString(sub)
		f.Category = nullString(category)
		f.End = &lastAt
		facts = append(facts, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch facts: %w", err)
	}
	return facts, nil
}

// FetchCatalog returns the active landing pages and their campaigns.
func (r *FactRepository) FetchCatalog(ctx context.Context) (domain.Catalog, error) {
	var catalog domain.Catalog
	index := map[string]int{}
	err := sqlstore.QueryAll(ctx, r.db, selectCatalogSQL, nil, func(rows sqlstore.RowScanner) error {
		var (
			id, title            string
			code, name, category sql.NullString
		)
		if err := rows.Scan(&id, &title, &code, &name, &category); err != nil {
			return err
		}

		i, ok := index[id]
		if !ok {
			i = len(catalog.Entities)
			index[id] = i
			catalog.Entities = append(catalog.Entities, domain.CatalogEntity{ID: id, Label: title})
		}
		if !code.Valid {
			return nil
		}
		catalog.Entities[i].SubEntities = append(catalog.Entities[i].SubEntities, domain.CatalogSubEntity{
			ID:       code.String,
			Label:    name.String,
			Category: nullString(category),
		})
		return nil
	})
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("fetch catalog: %w", err)
	}
	return catalog, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
