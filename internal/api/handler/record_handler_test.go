package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamops/opstracker/internal/core/domain"
)

type stubRecordService struct {
	listFn   func(ctx context.Context) ([]domain.ProductionRecord, error)
	createFn func(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error)
	updateFn func(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubRecordService) List(ctx context.Context) ([]domain.ProductionRecord, error) {
	return s.listFn(ctx)
}

func (s *stubRecordService) Create(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error) {
	return s.createFn(ctx, r)
}

func (s *stubRecordService) Update(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error) {
	return s.updateFn(ctx, r)
}

func (s *stubRecordService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

const recordBody = `{
	"userId": "u1",
	"task": "Support Queries",
	"team": "Stem Educational Program Operations",
	"frequency": "Daily",
	"totalUtilization": 45,
	"count": 2,
	"completedDate": "2024-03-15"
}`

func TestRecordHandler_Create_TaskAlias(t *testing.T) {
	e := newEcho()
	stub := &stubRecordService{
		createFn: func(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error) {
			// The historical "task" key must land on the single internal field.
			if r.ProcessName != "Support Queries" {
				t.Fatalf("task alias not resolved: %+v", r)
			}
			r.ID = "r1"
			return &r, nil
		},
	}
	handler := NewRecordHandler(stub, nil, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/records", recordBody), rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	// Responses carry both spellings with the same value.
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["processName"] != "Support Queries" || resp["task"] != "Support Queries" {
		t.Fatalf("expected both task keys mirrored, got %+v", resp)
	}
}

func TestRecordHandler_Create_ConflictingTaskKeys(t *testing.T) {
	e := newEcho()
	handler := NewRecordHandler(&stubRecordService{
		createFn: func(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error) {
			t.Fatal("conflicting keys must be rejected before the service")
			return nil, nil
		},
	}, nil, zerolog.Nop())

	body := `{
		"userId": "u1",
		"processName": "Support Queries",
		"task": "Other",
		"team": "Stem Educational Program Operations",
		"frequency": "Daily",
		"totalUtilization": 45,
		"count": 2,
		"completedDate": "2024-03-15"
	}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/records", body), rec)

	if err := handler.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecordHandler_Update_RequiresID(t *testing.T) {
	e := newEcho()
	handler := NewRecordHandler(&stubRecordService{
		updateFn: func(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error) {
			t.Fatal("an update without id must never reach the service")
			return nil, nil
		},
	}, nil, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/api/records", recordBody), rec)

	err := handler.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRecordHandler_Delete(t *testing.T) {
	e := newEcho()
	var deleted string
	handler := NewRecordHandler(&stubRecordService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}, nil, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodDelete, "/api/records", `{"id":"r1"}`), rec)

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != "r1" {
		t.Fatalf("expected delete for r1, got %q", deleted)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Record deleted successfully" {
		t.Fatalf("unexpected message: %+v", resp)
	}
}

func TestRecordHandler_Delete_Unknown(t *testing.T) {
	e := newEcho()
	handler := NewRecordHandler(&stubRecordService{
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrRecordNotFound
		},
	}, nil, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodDelete, "/api/records", `{"id":"ghost"}`), rec)

	if err := handler.Delete(c); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound to propagate, got %v", err)
	}
}
