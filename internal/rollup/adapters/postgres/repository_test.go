package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"funnel-metrics-service/internal/rollup/core/domain"
	"funnel-metrics-service/internal/rollup/core/ports"
	"funnel-metrics-service/internal/sqlstore"
	"funnel-metrics-service/internal/sqlstore/sqlstoretest"
)

var (
	t1 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 = time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
)

func window() domain.Window {
	return domain.Window{From: t1, To: t2}
}

// ------------------------------------------------------------
// FETCH FACTS
// ------------------------------------------------------------

func TestFactRepository_FetchFacts(t *testing.T) {
	rows := &sqlstoretest.Rows{Data: []sqlstoretest.Row{
		{"12", "nurse-spring", "nurse-spring", "pv", t1, t2, int64(40)},
		{"12", nil, nil, "session", t1, t1, int64(3)},
	}}
	db := &sqlstoretest.DB{
		QueryFn: func(ctx context.Context, query string, args ...any) (sqlstore.RowScanner, error) {
			if !strings.Contains(query, "FROM events") || !strings.Contains(query, "UNION ALL") {
				t.Fatalf("unexpected query: %s", query)
			}
			return rows, nil
		},
	}

	facts, err := NewFactRepository(db).FetchFacts(context.Background(), ports.FactQuery{Window: window()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(facts) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(facts))
	}

	f := facts[0]
	if f.EntityID != "12" || f.Metric != domain.MetricPageView || f.Count != 40 {
		t.Fatalf("unexpected fact: %+v", f)
	}
	if f.SubEntityID == nil || *f.SubEntityID != "nurse-spring" {
		t.Fatalf("expected sub-entity nurse-spring, got %v", f.SubEntityID)
	}
	if !f.Start.Equal(t1) || f.End == nil || !f.End.Equal(t2) {
		t.Fatalf("unexpected fact span: %v - %v", f.Start, f.End)
	}

	direct := facts[1]
	if direct.SubEntityID != nil || direct.SubEntityKey() != domain.DirectSubEntity {
		t.Fatalf("expected nil sub-entity to map to direct, got %v", direct.SubEntityID)
	}
	if direct.Category != nil {
		t.Fatalf("expected nil category")
	}
	if !rows.Closed() {
		t.Fatalf("expected rows to be closed")
	}

	args := db.LastQuery().Args
	if args[2] != nil {
		t.Fatalf("expected nil entity arg, got %v", args[2])
	}
}

func TestFactRepository_FetchFacts_EntityScope(t *testing.T) {
	db := &sqlstoretest.DB{}
	entity := "12"

	_, err := NewFactRepository(db).FetchFacts(context.Background(), ports.FactQuery{Window: window(), EntityID: &entity})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	args := db.LastQuery().Args
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[2] != "12" {
		t.Fatalf("expected entity arg 12, got %v", args[2])
	}
	if !args[0].(time.Time).Equal(t1) || !args[1].(time.Time).Equal(t2) {
		t.Fatalf("unexpected window args: %v", args)
	}
}

func TestFactRepository_FetchFacts_QueryCoversEveryMetric(t *testing.T) {
	for _, m := range domain.AllMetrics {
		if !strings.Contains(selectFactsSQL, "'"+string(m)+"' AS metric") {
			t.Fatalf("fact query does not produce metric %s", m)
		}
	}
}

func TestFactRepository_FetchFacts_Errors(t *testing.T) {
	boom := errors.New("connection reset")

	db := &sqlstoretest.DB{
		QueryFn: func(ctx context.Context, query string, args ...any) (sqlstore.RowScanner, error) {
			return nil, boom
		},
	}
	if _, err := NewFactRepository(db).FetchFacts(context.Background(), ports.FactQuery{Window: window()}); !errors.Is(err, boom) {
		t.Fatalf("expected query error, got %v", err)
	}

	db = &sqlstoretest.DB{
		QueryFn: func(ctx context.Context, query string, args ...any) (sqlstore.RowScanner, error) {
			return &sqlstoretest.Rows{Fail: boom}, nil
		},
	}
	if _, err := NewFactRepository(db).FetchFacts(context.Background(), ports.FactQuery{Window: window()}); !errors.Is(err, boom) {
		t.Fatalf("expected rows error, got %v", err)
	}
}

// ------------------------------------------------------------
// FETCH CATALOG
// ------------------------------------------------------------

func TestFactRepository_FetchCatalog(t *testing.T) {
	db := &sqlstoretest.DB{
		QueryFn: func(ctx context.Context, query string, args ...any) (sqlstore.RowScanner, error) {
			if !strings.Contains(query, "LEFT JOIN lp_campaigns") {
				t.Fatalf("unexpected query: %s", query)
			}
			return &sqlstoretest.Rows{Data: []sqlstoretest.Row{
				{"12", "Nurse LP", "nurse-spring", "Spring", "nurse-spring"},
				{"12", "Nurse LP", "nurse-fall", "Fall", "nurse-fall"},
				{"15", "Care LP", nil, nil, nil},
			}}, nil
		},
	}

	catalog, err := NewFactRepository(db).FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(catalog.Entities))
	}

	lp := catalog.Entities[0]
	if lp.ID != "12" || lp.Label != "Nurse LP" || len(lp.SubEntities) != 2 {
		t.Fatalf("unexpected entity: %+v", lp)
	}
	if lp.SubEntities[1].ID != "nurse-fall" || *lp.SubEntities[1].Category != "nurse-fall" {
		t.Fatalf("unexpected sub-entity: %+v", lp.SubEntities[1])
	}
	if len(catalog.Entities[1].SubEntities) != 0 {
		t.Fatalf("expected entity without campaigns to have no sub-entities")
	}
}
