package postgres

import (
	"context"
	"fmt"

	"funnel-metrics-service/internal/events/core/domain"
	"funnel-metrics-service/internal/events/core/ports"
	"funnel-metrics-service/internal/sqlstore"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
)

type EventRepository struct {
	db sqlstore.DB
}

func NewEventRepository(db sqlstore.DB) *EventRepository {
	return &EventRepository{db: db}
}

var _ ports.EventRepositoryPort = (*EventRepository)(nil)

const insertEventSQL = `
INSERT INTO events (
    event_id,
    event_name,
    entity_id,
    sub_entity_id,
    session_id,
    user_id,
    category,
    event_time,
    tags,
    metadata,
    dedupe_key
) VALUES (
    $1, $2, $3, $4, $5, $6,
    $7, $8, $9, $10, $11
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

func (r *EventRepository) InsertEvent(ctx context.Context, e *domain.Event) (bool, error) {
	metadataJSON, err := json.Marshal(e.Metadata)
	if err != nil {
		return false, fmt.Errorf("encode event metadata: %w", err)
	}

	res, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID.String(),
		e.EventName,
		e.EntityID,
		nullable(e.SubEntityID),
		nullable(e.SessionID),
		nullable(e.UserID),
		nullable(e.Category),
		e.EventTime,
		pq.Array(e.Tags),
		metadataJSON,
		e.DedupeKey,
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
