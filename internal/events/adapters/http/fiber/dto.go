package fiber

import "funnel-metrics-service/internal/events/core/usecase"

// CreateEventRequest represents event creation payload
// @Description Tracking event. session_id or user_id is required.
type CreateEventRequest struct {
	EventName   string         `json:"event_name" example:"click" enums:"page_view,click,job_view,registration,application,engagement_summary"`
	EntityID    string         `json:"entity_id" example:"12"`
	SubEntityID string         `json:"sub_entity_id,omitempty" example:"nurse-a"`
	SessionID   string         `json:"session_id,omitempty" example:"6b1f0c1e"`
	UserID      string         `json:"user_id,omitempty"`
	Category    string         `json:"category,omitempty" example:"nurse"`
	Timestamp   int64          `json:"timestamp" example:"1767225600"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func (r CreateEventRequest) toInput() usecase.StoreEventInput {
	return usecase.StoreEventInput{
		EventName:   r.EventName,
		EntityID:    r.EntityID,
		SubEntityID: r.SubEntityID,
		SessionID:   r.SessionID,
		UserID:      r.UserID,
		Category:    r.Category,
		Timestamp:   r.Timestamp,
		Tags:        r.Tags,
		Metadata:    r.Metadata,
	}
}

type CreateEventResponse struct {
	Status  string `json:"status" example:"created"`
	Message string `json:"message,omitempty"`
}

type BulkCreateEventsRequest struct {
	Events []CreateEventRequest `json:"events"`
}

type BulkCreateEventsResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}
