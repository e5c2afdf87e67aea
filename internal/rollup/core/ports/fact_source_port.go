package ports

import (
	"context"

	"funnel-metrics-service/internal/rollup/core/domain"
)

type FactQuery struct {
	Window   domain.Window
	EntityID *string // optional
}

// FactSourcePort supplies leaf facts for a window. It does no aggregation
// beyond counting identical rows.
type FactSourcePort interface {
	FetchFacts(ctx context.Context, q FactQuery) ([]domain.LeafFact, error)
}

// CatalogPort supplies the active entities and sub-entities to zero-fill.
type CatalogPort interface {
	FetchCatalog(ctx context.Context) (domain.Catalog, error)
}
