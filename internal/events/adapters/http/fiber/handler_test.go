package fiber

import (
	"bytes"
	"context"
		"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"funnel-metrics-service/internal/events/core/usecase"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

type fakeStoreEventUseCase struct {
	ExecuteFunc         func(ctx context.Context, in usecase.StoreEventInput) (bool, error)
	BulkCreateFunc      func(ctx context.Context, in usecase.BulkCreateEventsInput) (usecase.BulkCreateEventsResult, error)
	LastExecuteInput    usecase.StoreEventInput
	LastBulkCreateInput usecase.BulkCreateEventsInput
}

func (f *fakeStoreEventUseCase) Execute(ctx context.Context, in usecase.StoreEventInput) (bool, error) {
	f.LastExecuteInput = in
	if f.ExecuteFunc != nil {
		return f.ExecuteFunc(ctx, in)
	}
	return false, nil
}

func (f *fakeStoreEventUseCase) BulkCreateEvents(ctx context.Context, in usecase.BulkCreateEventsInput) (usecase.BulkCreateEventsResult, error) {
	f.LastBulkCreateInput = in
	if f.BulkCreateFunc != nil {
		return f.BulkCreateFunc(ctx, in)
	}
	return usecase.BulkCreateEventsResult{}, nil
}

// helper: create fiber app and routes
func setupTestApp(uc StoreEventUseCase) *fiber.App {
	app := fiber.New()
	h := NewEventHandler(uc, 3)

	app.Post("/events", h.CreateEvent)
	app.Post("/events/bulk", h.BulkCreateEvents)

	return app
}

// helper: send request
func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	return resp, respBody
}

func TestCreateEvent_Success_Created(t *testing.T) {
	now := time.Now().Add(-time.Minute).Unix()

	fakeUC := &fakeStoreEventUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.StoreEventInput) (bool, error) {
			// created = true
			return true, nil
		},
	}

	app := setupTestApp(fakeUC)

	reqBody := CreateEventRequest{
		EventName:   "click",
		EntityID:    "lp-1",
		SubEntityID: "nurse-a",
		SessionID:   "sess-1",
		Timestamp:   now,
		Tags:        []string{"hero"},
		Metadata:    map[string]any{"position": 1},
	}

	resp, body := doRequest(t, app, http.MethodPost, "/events", reqBody)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusCreated, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if respJSON["status"] != "created" {
		t.Errorf("expected status=created, got %v", respJSON["status"])
	}
}

func TestCreateEvent_Success_Duplicate(t *testing.T) {
	now := time.Now().Add(-time.Minute).Unix()

	fakeUC := &fakeStoreEventUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.StoreEventInput) (bool, error) {
			// created = false → duplicate
			return false, nil
		},
	}

	app := setupTestApp(fakeUC)

	reqBody := CreateEventRequest{
		EventName: "page_view",
		EntityID:  "lp-1",
		SessionID: "sess-1",
		Timestamp: now,
	}

	resp, body := doRequest(t, app, http.MethodPost, "/events", reqBody)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if respJSON["status"] != "duplicate" {
		t.Errorf("expected status=duplicate, got %v", respJSON["status"])
	}
}

func TestCreateEvent_InvalidJSON(t *testing.T) {
	fakeUC := &fakeStoreEventUseCase{}
	app := setupTestApp(fakeUC)

	// Undefined JSON
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(`{"event_name":`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	if resp.StatusCode != http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}
}

func TestCreateEvent_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"invalid event", fmt.Errorf("%w: EventName (oneof)", usecase.ErrInvalidEvent), http.StatusBadRequest, "invalid_event"},
		{"future timestamp", usecase.ErrFutureTime, http.StatusBadRequest, "invalid_event"},
		{"repository failure", errors.New("db error"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := setupTestApp(&fakeStoreEventUseCase{
				ExecuteFunc: func(ctx context.Context, in usecase.StoreEventInput) (bool, error) {
					return false, tc.err
				},
			})

			reqBody := CreateEventRequest{EventName: "page_view", EntityID: "lp-1", SessionID: "sess-1", Timestamp: 1}
			resp, body := doRequest(t, app, http.MethodPost, "/events", reqBody)

			if resp.StatusCode != tc.wantCode {
				t.Fatalf("expected status %d, got %d (body: %s)", tc.wantCode, resp.StatusCode, string(body))
			}

			var respJSON map[string]any
			if err := json.Unmarshal(body, &respJSON); err != nil {
				t.Fatalf("invalid json response: %v", err)
			}
			if respJSON["error"] != tc.wantErr {
				t.Errorf("expected error=%q, got %v", tc.wantErr, respJSON["error"])
			}
		})
	}
}

// ---- Bulk tests ----

func TestBulkCreateEvents_Success_AllCreated(t *testing.T) {
	now := time.Now().Add(-time.Minute).Unix()

	fakeUC := &fakeStoreEventUseCase{
		BulkCreateFunc: func(ctx context.Context, in usecase.BulkCreateEventsInput) (usecase.BulkCreateEventsResult, error) {
			return usecase.BulkCreateEventsResult{
				Created:    len(in.Events),
				Duplicates: 0,
			}, nil
		},
	}

	app := setupTestApp(fakeUC)

	reqBody := BulkCreateEventsRequest{
		Events: []CreateEventRequest{
			{
				EventName: "page_view",
				EntityID:  "lp-1",
				SessionID: "s1",
				Timestamp: now,
				Tags:      []string{"organic"},
			},
			{
				EventName: "engagement_summary",
				EntityID:  "lp-1",
				SessionID: "s1",
				Timestamp: now,
				Metadata:  map[string]any{"dwell_seconds": 12, "scroll_depth": 80},
			},
		},
	}

	resp, body := doRequest(t, app, http.MethodPost, "/events/bulk", reqBody)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusCreated, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if int(respJSON["created"].(float64)) != 2 {
		t.Errorf("expected created=2, got %v", respJSON["created"])
	}
	if int(respJSON["duplicates"].(float64)) != 0 {
		t.Errorf("expected duplicates=0, got %v", respJSON["duplicates"])
	}
}

func TestBulkCreateEvents_MixedCreatedAndDuplicate(t *testing.T) {
	now := time.Now().Add(-time.Minute).Unix()

	fakeUC := &fakeStoreEventUseCase{
		BulkCreateFunc: func(ctx context.Context, in usecase.BulkCreateEventsInput) (usecase.BulkCreateEventsResult, error) {
			return usecase.BulkCreateEventsResult{
				Created:    1,
				Duplicates: 1,
			}, nil
		},
	}

	app := setupTestApp(fakeUC)

	reqBody := BulkCreateEventsRequest{
		Events: []CreateEventRequest{
			{
				EventName: "page_view",
				EntityID:  "lp-1",
				SessionID: "s1",
				Timestamp: now,
			},
			{
				EventName: "page_view",
				EntityID:  "lp-1",
				SessionID: "s1",
				Timestamp: now,
			},
		},
	}

	resp, body := doRequest(t, app, http.MethodPost, "/events/bulk", reqBody)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusCreated, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if int(respJSON["created"].(float64)) != 1 {
		t.Errorf("expected created=1, got %v", respJSON["created"])
	}
	if int(respJSON["duplicates"].(float64)) != 1 {
		t.Errorf("expected duplicates=1, got %v", respJSON["duplicates"])
	}
}

func TestBulkCreateEvents_InvalidJSON(t *testing.T) {
	fakeUC := &fakeStoreEventUseCase{}
	app := setupTestApp(fakeUC)

	req := httptest.NewRequest(http.MethodPost, "/events/bulk", bytes.NewBufferString(`{"events":[`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	if resp.StatusCode != http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}
}

func TestBulkCreateEvents_EmptyEvents(t *testing.T) {
	fakeUC := &fakeStoreEventUseCase{}
	app := setupTestApp(fakeUC)

	reqBody := BulkCreateEventsRequest{
		Events: []CreateEventRequest{},
	}

	resp, body := doRequest(t, app, http.MethodPost, "/events/bulk", reqBody)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}

	if respJSON["error"] != "events_list_required" {
		t.Errorf("expected error=events_list_required, got %v", respJSON["error"])
	}
}

func TestBulkCreateEvents_ErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantErr  string
	}{
		{fmt.Errorf("events[0]: %w", usecase.ErrInvalidEvent), http.StatusBadRequest, "invalid_event"},
		{errors.New("db error"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tc := range cases {
		app := setupTestApp(&fakeStoreEventUseCase{
			BulkCreateFunc: func(ctx context.Context, in usecase.BulkCreateEventsInput) (usecase.BulkCreateEventsResult, error) {
				return usecase.BulkCreateEventsResult{}, tc.err
			},
		})

		reqBody := BulkCreateEventsRequest{
			Events: []CreateEventRequest{{EventName: "page_view", EntityID: "lp-1", SessionID: "s1", Timestamp: 1}},
		}
		resp, body := doRequest(t, app, http.MethodPost, "/events/bulk", reqBody)

		if resp.StatusCode != tc.wantCode {
			t.Fatalf("%v: expected status %d, got %d (body: %s)", tc.err, tc.wantCode, resp.StatusCode, string(body))
		}

		var respJSON map[string]any
		if err := json.Unmarshal(body, &respJSON); err != nil {
			t.Fatalf("invalid json response: %v", err)
		}
		if respJSON["error"] != tc.wantErr {
			t.Errorf("%v: expected error=%q, got %v", tc.err, tc.wantErr, respJSON["error"])
		}
	}
}

func TestCreateEvent_ForwardsPayload(t *testing.T) {
	now := time.Now().Add(-time.Minute).Unix()

	fakeUC := &fakeStoreEventUseCase{
		ExecuteFunc: func(ctx context.Context, in usecase.StoreEventInput) (bool, error) {
			return true, nil
		},
	}

	app := setupTestApp(fakeUC)

	reqBody := CreateEventRequest{
		EventName:   "application",
		EntityID:    "lp-7",
		SubEntityID: "care-b",
		UserID:      "user_9",
		Category:    "care",
		Timestamp:   now,
	}

	resp, body := doRequest(t, app, http.MethodPost, "/events", reqBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusCreated, resp.StatusCode, string(body))
	}

	in := fakeUC.LastExecuteInput
	if in.EventName != "application" || in.EntityID != "lp-7" || in.SubEntityID != "care-b" ||
		in.UserID != "user_9" || in.Category != "care" || in.Timestamp != now {
		t.Fatalf("unexpected usecase input: %+v", in)
	}
}

func TestBulkCreateEvents_TooLarge(t *testing.T) {
	fakeUC := &fakeStoreEventUseCase{
		BulkCreateFunc: func(ctx context.Context, in usecase.BulkCreateEventsInput) (usecase.BulkCreateEventsResult, error) {
			t.Fatalf("usecase must not be called for oversized batches")
			return usecase.BulkCreateEventsResult{}, nil
		},
	}

	app := setupTestApp(fakeUC)

	item := CreateEventRequest{EventName: "page_view", EntityID: "lp-1", SessionID: "s1", Timestamp: 1}
	reqBody := BulkCreateEventsRequest{Events: []CreateEventRequest{item, item, item, item}}

	resp, body := doRequest(t, app, http.MethodPost, "/events/bulk", reqBody)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}

	var respJSON map[string]any
	if err := json.Unmarshal(body, &respJSON); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if respJSON["error"] != "events_list_too_large" {
		t.Errorf("expected error=events_list_too_large, got %v", respJSON["error"])
	}
}
