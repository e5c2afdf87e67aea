package ports

import (
	"context"

	"funnel-metrics-service/internal/ranking/core/domain"
)

type PageRequest struct {
	Sort   domain.SortField // always a Stored field
	Dir    domain.SortDir
	Offset int
	Limit  int
}

// EntitySourcePort is the record source behind the worker ranking.
// Implementations order by (Sort, Dir) and then by id ascending.
type EntitySourcePort interface {
	CountEntities(ctx context.Context, q domain.Query) (int64, error)
	FetchEntityPage(ctx context.Context, q domain.Query, p PageRequest) ([]domain.Worker, error)
	// FetchAllEntities returns at most limit matching entities in id order.
	// limit <= 0 returns every match.
	FetchAllEntities(ctx context.Context, q domain.Query, limit int) ([]domain.Worker, error)
	// FetchEntityStats returns stats keyed by id. Ids without activity may
	// be absent.
	FetchEntityStats(ctx context.Context, ids []int64) (map[int64]domain.Stats, error)
}
