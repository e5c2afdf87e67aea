package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"funnel-metrics-service/internal/geo"
	"funnel-metrics-service/internal/ranking/core/domain"
	"funnel-metrics-service/internal/ranking/core/ports"
	"funnel-metrics-service/internal/sqlstore"

	"github.com/lib/pq"
)

// sortColumns whitelists the stored fields that may reach ORDER BY.
var sortColumns = map[domain.SortField]string{
	domain.SortID:        "id",
	domain.SortName:      "name",
	domain.SortCreatedAt: "created_at",
}

const workerColumns = `id, name, email, prefecture, city, is_suspended, created_at, lat, lng`

// completedStatuses are the application statuses that count as work done.
var completedStatuses = []string{"COMPLETED_PENDING", "COMPLETED_RATED"}

type WorkerRepository struct {
	db sqlstore.DB
}

func NewWorkerRepository(db sqlstore.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

var _ ports.EntitySourcePort = (*WorkerRepository)(nil)

func (r *WorkerRepository) CountEntities(ctx context.Context, q domain.Query) (int64, error) {
	where, args := buildWhere(q)

	var total int64
	err := sqlstore.QueryAll(ctx, r.db, `SELECT COUNT(*) FROM users WHERE `+where, args, func(rows sqlstore.RowScanner) error {
		return rows.Scan(&total)
	})
	if err != nil {
		return 0, fmt.Errorf("count workers: %w", err)
	}
	return total, nil
}

func (r *WorkerRepository) FetchEntityPage(ctx context.Context, q domain.Query, p ports.PageRequest) ([]domain.Worker, error) {
	col, ok := sortColumns[p.Sort]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a stored column", domain.ErrUnknownSortField, p.Sort)
	}
	dir := "DESC"
	if p.Dir == domain.Asc {
		dir = "ASC"
	}

	where, args := buildWhere(q)
	n := len(args)
	query := fmt.Sprintf(`
SELECT %s
FROM users
WHERE %s
ORDER BY %s %s, id ASC
LIMIT $%d OFFSET $%d`, workerColumns, where, col, dir, n+1, n+2)
	args = append(args, p.Limit, p.Offset)

	return r.queryWorkers(ctx, query, args)
}

func (r *WorkerRepository) FetchAllEntities(ctx context.Context, q domain.Query, limit int) ([]domain.Worker, error) {
	where, args := buildWhere(q)
	query := fmt.Sprintf(`
SELECT %s
FROM users
WHERE %s
ORDER BY id ASC`, workerColumns, where)
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf("\nLIMIT $%d", len(args))
	}

	return r.queryWorkers(ctx, query, args)
}

const selectStatsSQL = `
SELECT u.id,
       COALESCE(rv.avg_rating, 0),
       COALESCE(rv.review_count, 0),
       COALESCE(ap.work_count, 0)
FROM unnest($1::bigint[]) AS u(id)
LEFT JOIN (
    SELECT user_id, AVG(rating)::float8 AS avg_rating, COUNT(*) AS review_count
    FROM reviews
    WHERE user_id = ANY($1) AND reviewer_type = 'FACILITY'
    GROUP BY user_id
) rv ON rv.user_id = u.id
LEFT JOIN (
    SELECT user_id, COUNT(*) AS work_count
    FROM applications
    WHERE user_id = ANY($1) AND status = ANY($2)
    GROUP BY user_id
) ap ON ap.user_id = u.id`

func (r *WorkerRepository) FetchEntityStats(ctx context.Context, ids []int64) (map[int64]domain.Stats, error) {
	stats := make(map[int64]domain.Stats, len(ids))
	if len(ids) == 0 {
		return stats, nil
	}

	args := []any{pq.Array(ids), pq.Array(completedStatuses)}
	err := sqlstore.QueryAll(ctx, r.db, selectStatsSQL, args, func(rows sqlstore.RowScanner) error {
		var (
			id int64
			s  domain.Stats
		)
		if err := rows.Scan(&id, &s.AvgRating, &s.ReviewCount, &s.TotalWorkCount); err != nil {
			return err
		}
		stats[id] = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch worker stats: %w", err)
	}
	return stats, nil
}

func (r *WorkerRepository) queryWorkers(ctx context.Context, query string, args []any) ([]domain.Worker, error) {
	var workers []domain.Worker
	err := sqlstore.QueryAll(ctx, r.db, query, args, func(rows sqlstore.RowScanner) error {
		var (
			w                domain.Worker
			prefecture, city sql.NullString
			lat, lng         sql.NullFloat64
		)
		if err := rows.Scan(&w.ID, &w.Name, &w.Email, &prefecture, &city, &w.IsSuspended, &w.CreatedAt, &lat, &lng); err != nil {
			return err
		}
		if prefecture.Valid {
			w.Prefecture = &prefecture.String
		}
		if city.Valid {
			w.City = &city.String
		}
		if lat.Valid && lng.Valid {
			w.Location = &geo.Point{Lat: lat.Float64, Lng: lng.Float64}
		}
		workers = append(workers, w)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch workers: %w", err)
	}
	return workers, nil
}

// buildWhere renders the query filters. Location filtering is left to the
// caller so that workers without coordinates can be counted.
func buildWhere(q domain.Query) (string, []any) {
	conds := []string{"deleted_at IS NULL"}
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.Search != nil {
		term := strings.TrimSpace(*q.Search)
		like := next("%" + term + "%")
		or := []string{
			"name ILIKE " + like,
			"email ILIKE " + like,
			"phone_number ILIKE " + like,
		}
		if id, err := strconv.ParseInt(term, 10, 64); err == nil {
			or = append([]string{"id = " + next(id)}, or...)
		}
		conds = append(conds, "("+strings.Join(or, " OR ")+")")
	}
	if q.Prefecture != nil {
		conds = append(conds, "prefecture = "+next(*q.Prefecture))
	}
	if q.City != nil {
		conds = append(conds, "city = "+next(*q.City))
	}
	switch q.Status {
	case domain.StatusActive:
		conds = append(conds, "is_suspended = FALSE")
	case domain.StatusSuspended:
		conds = append(conds, "is_suspended = TRUE")
	}

	return strings.Join(conds, " AND "), args
}
