package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tracked event names. Each one feeds a funnel metric or the engagement
// summary.
const (
	EventPageView          = "page_view"
	EventClick             = "click"
	EventJobView           = "job_view"
	EventRegistration      = "registration"
	EventApplication       = "application"
	EventEngagementSummary = "engagement_summary"
)

type Event struct {
	EventID     uuid.UUID
	EventName   string
	EntityID    string
	SubEntityID string
	SessionID   string
	UserID      string
	Category    string
	EventTime   time.Time
	Tags        []string
	Metadata    map[string]any
	DedupeKey   string
}
