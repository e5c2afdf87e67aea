package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"funnel-metrics-service/internal/events/core/domain"
)

// Fake repo
type fakeBulkRepo struct {
	InsertCalls []*domain.Event
	Results     []bool
	Err         error
}

func (f *fakeBulkRepo) InsertEvent(ctx context.Context, e *domain.Event) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	f.InsertCalls = append(f.InsertCalls, e)

	if len(f.Results) == 0 {
		// default: created
		return true, nil
	}

	res := f.Results[0]
	f.Results = f.Results[1:]
	return res, nil
}

func TestBulkCreateEvents_AllCreated(t *testing.T) {
	ctx := context.Background()

	repo := &fakeBulkRepo{
		Results: []bool{true, true, true},
	}

	uc := NewStoreEventUseCase(repo)

	now := time.Now().Add(-time.Minute).Unix()

	input := BulkCreateEventsInput{
		Events: []StoreEventInput{
			{
				EventName: domain.EventPageView,
				EntityID:  "lp-1",
				SessionID: "s1",
				Timestamp: now,
				Tags:      []string{"campaign"},
				Metadata:  map[string]any{"referrer": "search"},
			},
			{
				EventName:   domain.EventClick,
				EntityID:    "lp-1",
				SubEntityID: "nurse-a",
				SessionID:   "s1",
				Timestamp:   now,
			},
			{
				EventName: domain.EventEngagementSummary,
				EntityID:  "lp-1",
				SessionID: "s1",
				Timestamp: now,
				Metadata:  map[string]any{"dwell_seconds": 14, "scroll_depth": 80, "cta_clicked": true},
			},
		},
	}

	res, err := uc.BulkCreateEvents(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Created != 3 {
		t.Errorf("expected Created=3, got %d", res.Created)
	}
	if res.Duplicates != 0 {
		t.Errorf("expected Duplicates=0, got %d", res.Duplicates)
	}

	if len(repo.InsertCalls) != 3 {
		t.Errorf("expected 3 InsertEvent calls, got %d", len(repo.InsertCalls))
	}
}

func TestBulkCreateEvents_MixedCreatedAndDuplicate(t *testing.T) {
	ctx := context.Background()

	// created, duplicate, created
	repo := &fakeBulkRepo{
		Results: []bool{true, false, true},
	}

	uc := NewStoreEventUseCase(repo)

	now := time.Now().Add(-time.Minute).Unix()
	ev := StoreEventInput{EventName: domain.EventPageView, EntityID: "lp-1", SessionID: "s1", Timestamp: now}

	input := BulkCreateEventsInput{
		Events: []StoreEventInput{ev, ev, {EventName: domain.EventRegistration, EntityID: "lp-1", UserID: "u2", Timestamp: now}},
	}

	res, err := uc.BulkCreateEvents(ctx, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Created != 2 {
		t.Errorf("expected Created=2, got %d", res.Created)
	}
	if res.Duplicates != 1 {
		t.Errorf("expected Duplicates=1, got %d", res.Duplicates)
	}
	if repo.InsertCalls[0].DedupeKey != repo.InsertCalls[1].DedupeKey {
		t.Errorf("expected identical events to share a dedupe key")
	}
}

func TestBulkCreateEvents_ValidationErrorInOneEvent(t *testing.T) {
	ctx := context.Background()

	repo := &fakeBulkRepo{}
	uc := NewStoreEventUseCase(repo)

	now := time.Now().Add(-time.Minute).Unix()

	input := BulkCreateEventsInput{
		Events: []StoreEventInput{
			{EventName: domain.EventPageView, EntityID: "lp-1", SessionID: "s1", Timestamp: now},
			// Error : empty EventName
			{EventName: "", EntityID: "lp-1", SessionID: "s2", Timestamp: now},
			{EventName: domain.EventClick, EntityID: "lp-1", SessionID: "s3", Timestamp: now},
		},
	}

	_, err := uc.BulkCreateEvents(ctx, input)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("expected ErrInvalidEvent, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "events[1]") {
		t.Errorf("expected failing index in error, got %v", err)
	}

	if len(repo.InsertCalls) != 0 {
		t.Errorf("expected 0 InsertEvent calls, got %d", len(repo.InsertCalls))
	}
}

func TestBulkCreateEvents_RepositoryErrorStops(t *testing.T) {
	repo := &fakeBulkRepo{Err: errors.New("db down")}
	uc := NewStoreEventUseCase(repo)

	now := time.Now().Add(-time.Minute).Unix()
	_, err := uc.BulkCreateEvents(context.Background(), BulkCreateEventsInput{
		Events: []StoreEventInput{{EventName: domain.EventPageView, EntityID: "lp-1", SessionID: "s1", Timestamp: now}},
	})
	if err == nil || err.Error() != "db down" {
		t.Fatalf("expected repository error, got %v", err)
	}
}
