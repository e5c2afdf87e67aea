package postgres

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"funnel-metrics-service/internal/events/core/domain"
	"funnel-metrics-service/internal/sqlstore/sqlstoretest"

	"github.com/google/uuid"
)

// ------------------------------------------------------------
// SUCCESS (created)
// ------------------------------------------------------------

func TestEventRepository_InsertEvent_Created(t *testing.T) {
	db := &sqlstoretest.DB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO events") || !strings.Contains(query, "ON CONFLICT (dedupe_key) DO NOTHING") {
				t.Fatalf("unexpected query: %s", query)
			}
			return sqlstoretest.Result{Affected: 1}, nil
		},
	}

	repo := NewEventRepository(db)

	id := uuid.New()
	e := &domain.Event{
		EventID:     id,
		EventName:   domain.EventClick,
		EntityID:    "lp-1",
		SubEntityID: "nurse-a",
		SessionID:   "sess-1",
		Category:    "nurse",
		EventTime:   time.Now().UTC(),
		Tags:        []string{"a", "b"},
		Metadata:    map[string]any{"k": "v"},
		DedupeKey:   "dk",
	}

	created, err := repo.InsertEvent(context.Background(), e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true, got false")
	}
	if len(db.Execs) != 1 {
		t.Fatalf("expected ExecContext to be called once, got %d", len(db.Execs))
	}

	args := db.Execs[0].Args
	if len(args) != 11 {
		t.Fatalf("expected 11 args, got %d", len(args))
	}
	if args[0] != id.String() {
		t.Fatalf("expected event id arg, got %v", args[0])
	}
	if args[5] != nil {
		t.Fatalf("expected empty user id to bind as NULL, got %v", args[5])
	}
	if string(args[9].([]byte)) != `{"k":"v"}` {
		t.Fatalf("unexpected metadata arg: %s", args[9])
	}
}

// ------------------------------------------------------------
// DUPLICATE (rowsAffected=0)
// ------------------------------------------------------------

func TestEventRepository_InsertEvent_Duplicate(t *testing.T) {
	db := &sqlstoretest.DB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return sqlstoretest.Result{Affected: 0}, nil
		},
	}

	repo := NewEventRepository(db)

	e := &domain.Event{
		EventID:   uuid.New(),
		EventName: domain.EventPageView,
		EntityID:  "lp-1",
		SessionID: "sess-1",
		EventTime: time.Now().UTC(),
		Tags:      []string{},
		Metadata:  map[string]any{},
		DedupeKey: "dk",
	}

	created, err := repo.InsertEvent(context.Background(), e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatalf("expected created=false for duplicate")
	}
}

// ------------------------------------------------------------
// DB ERROR
// ------------------------------------------------------------

func TestEventRepository_InsertEvent_Error(t *testing.T) {
	db := &sqlstoretest.DB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, errors.New("db error")
		},
	}

	repo := NewEventRepository(db)

	e := &domain.Event{
		EventID:   uuid.New(),
		EventName: domain.EventPageView,
		EntityID:  "lp-1",
		SessionID: "sess-1",
		EventTime: time.Now().UTC(),
		Tags:      []string{},
		Metadata:  map[string]any{},
		DedupeKey: "dk",
	}

	created, err := repo.InsertEvent(context.Background(), e)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if created {
		t.Fatalf("expected created=false on error")
	}
}

// ------------------------------------------------------------
// UNENCODABLE METADATA
// ------------------------------------------------------------

func TestEventRepository_InsertEvent_BadMetadata(t *testing.T) {
	db := &sqlstoretest.DB{}

	e := &domain.Event{
		EventID:   uuid.New(),
		EventName: domain.EventPageView,
		EntityID:  "lp-1",
		SessionID: "sess-1",
		EventTime: time.Now().UTC(),
		Metadata:  map[string]any{"score": math.NaN()},
		DedupeKey: "dk",
	}

	if _, err := NewEventRepository(db).InsertEvent(context.Background(), e); err == nil {
		t.Fatalf("expected encode error, got nil")
	}
	if len(db.Execs) != 0 {
		t.Fatalf("expected no exec on encode failure")
	}
}
