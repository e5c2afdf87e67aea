package postgres

import (
	"context"
	"fmt"
	"time"

	"funnel-metrics-service/internal/engagement/core/domain"
	"funnel-metrics-service/internal/engagement/core/ports"
	"funnel-metrics-service/internal/logging"
	"funnel-metrics-service/internal/sqlstore"

	"github.com/goccy/go-json"
)

// A page may report several summaries per session while the visitor stays;
// only the latest one counts.
const selectSessionsSQL = `
SELECT DISTINCT ON (session_id) session_id, entity_id, event_time, metadata
FROM events
WHERE event_name = 'engagement_summary'
  AND session_id IS NOT NULL
  AND event_time BETWEEN $1 AND $2
  AND ($3::text IS NULL OR entity_id = $3)
ORDER BY session_id, event_time DESC`

// Every field is required; pointers tell an absent field from a zero one.
type summaryMetadata struct {
	DwellSeconds *float64 `json:"dwell_seconds"`
	ScrollDepth  *float64 `json:"scroll_depth"`
	CTAClicked   *bool    `json:"cta_clicked"`
}

func (m summaryMetadata) complete() bool {
	return m.DwellSeconds != nil && m.ScrollDepth != nil && m.CTAClicked != nil
}

type SessionRepository struct {
	db sqlstore.DB
}

func NewSessionRepository(db sqlstore.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ ports.SessionSourcePort = (*SessionRepository)(nil)

func (r *SessionRepository) FetchSessions(ctx context.Context, q ports.SessionQuery) (ports.SessionBatch, error) {
	var batch ports.SessionBatch
	args := []any{q.From, q.To, q.EntityID}
	err := sqlstore.QueryAll(ctx, r.db, selectSessionsSQL, args, func(rows sqlstore.RowScanner) error {
		var (
			s   domain.Session
			at  time.Time
			raw []byte
		)
		if err := rows.Scan(&s.ID, &s.EntityID, &at, &raw); err != nil {
			return err
		}

		var meta summaryMetadata
		if err := json.Unmarshal(raw, &meta); err != nil {
			logging.Warn().Err(err).Str("session_id", s.ID).Msg("skipping engagement summary with unreadable metadata")
			batch.Skipped++
			return nil
		}
		if !meta.complete() {
			logging.Warn().Str("session_id", s.ID).Msg("skipping engagement summary with missing metadata fields")
			batch.Skipped++
			return nil
		}
		s.At = at
		s.DwellSeconds = *meta.DwellSeconds
		s.ScrollDepth = *meta.ScrollDepth
		s.CTAClicked = *meta.CTAClicked
		batch.Sessions = append(batch.Sessions, s)
		return nil
	})
	if err != nil {
		return ports.SessionBatch{}, fmt.Errorf("fetch engagement sessions: %w", err)
	}
	return batch, nil
}
