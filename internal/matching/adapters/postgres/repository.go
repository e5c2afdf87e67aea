package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"funnel-metrics-service/internal/logging"
	"funnel-metrics-service/internal/matching/core/domain"
	"funnel-metrics-service/internal/matching/core/ports"
	"funnel-metrics-service/internal/sqlstore"
)

// One row per (job, application); jobs without applications come back with
// NULL application columns and become samples without candidates.
const selectSamplesSQL = `
SELECT j.id, j.created_at, a.id, a.status, a.updated_at
FROM jobs j
LEFT JOIN job_work_dates wd ON wd.job_id = j.id
LEFT JOIN applications a ON a.work_date_id = wd.id
WHERE j.created_at BETWEEN $1 AND $2
ORDER BY j.id, a.updated_at`

type SampleRepository struct {
	db sqlstore.DB
}

func NewSampleRepository(db sqlstore.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

var _ ports.DurationSourcePort = (*SampleRepository)(nil)

func (r *SampleRepository) FetchSamples(ctx context.Context, from, to time.Time) ([]domain.DurationSample, error) {
	var samples []domain.DurationSample
	err := sqlstore.QueryAll(ctx, r.db, selectSamplesSQL, []any{from, to}, func(rows sqlstore.RowScanner) error {
		var (
			jobID     int64
			createdAt time.Time
			appID     sql.NullInt64
			status    sql.NullString
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&jobID, &createdAt, &appID, &status, &updatedAt); err != nil {
			return err
		}

		id := strconv.FormatInt(jobID, 10)
		if n := len(samples); n == 0 || samples[n-1].ID != id {
			samples = append(samples, domain.DurationSample{ID: id, Start: createdAt})
		}
		if !appID.Valid {
			return nil
		}
		last := &samples[len(samples)-1]
		if !status.Valid || !updatedAt.Valid {
			logging.Warn().Str("job_id", id).Int64("application_id", appID.Int64).Msg("skipping application without status or change time")
			last.SkippedCandidates++
			return nil
		}
		last.Candidates = append(last.Candidates, domain.Candidate{At: updatedAt.Time, Status: status.String})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch duration samples: %w", err)
	}
	return samples, nil
}
