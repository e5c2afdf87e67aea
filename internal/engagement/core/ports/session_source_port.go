package ports

import (
	"context"
	"time"

	"funnel-metrics-service/internal/engagement/core/domain"
)

type SessionQuery struct {
	From     time.Time
	To       time.Time
	EntityID *string
}

// SessionBatch holds the sessions read for a query. Skipped counts the
// stored summaries that could not become a Session.
type SessionBatch struct {
	Sessions []domain.Session
	Skipped  int
}

type SessionSourcePort interface {
	FetchSessions(ctx context.Context, q SessionQuery) (SessionBatch, error)
}
