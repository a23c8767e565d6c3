package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/teamops/opstracker/internal/core/domain"
	"github.com/teamops/opstracker/internal/core/report"
)

func reportFixtures() (*stubUserRepo, *stubRecordRepo) {
	users := &stubUserRepo{users: []domain.User{
		{ID: "admin-001", Username: "admin", Name: "Super Admin", Role: domain.RoleAdmin},
		{ID: "u1", Username: "alice", Name: "Alice", Role: domain.RoleUser},
		{ID: "u2", Username: "bob", Name: "Bob", Role: domain.RoleUser},
	}}

	r1 := seededRecord("r1", "u1")
	r1.UserName = "Alice"
	r1.TotalUtilization = 120
	r2 := seededRecord("r2", "u2")
	r2.UserName = "Bob"
	r2.TotalUtilization = 60
	r2.CompletedDate = "2024-01-02"

	return users, &stubRecordRepo{records: []domain.ProductionRecord{r1, r2}}
}

func TestReportService_Overview(t *testing.T) {
	users, records := reportFixtures()
	svc := NewReportService(users, records, discardLogger)

	overview, err := svc.Overview(context.Background(), report.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(overview.UtilizationByUser) != 2 {
		t.Fatalf("expected 2 utilization rows, got %d", len(overview.UtilizationByUser))
	}
	// Sorted by average hours descending: Alice (2h) before Bob (1h).
	if overview.UtilizationByUser[0].UserID != "u1" {
		t.Errorf("expected u1 first, got %s", overview.UtilizationByUser[0].UserID)
	}
	if len(overview.RecordsByTeam) != len(domain.Teams) {
		t.Errorf("team axis must cover all %d teams, got %d", len(domain.Teams), len(overview.RecordsByTeam))
	}
	if len(overview.Trend) != 2 {
		t.Errorf("expected 2 trend points, got %d", len(overview.Trend))
	}
}

func TestReportService_Overview_FilterByUser(t *testing.T) {
	users, records := reportFixtures()
	svc := NewReportService(users, records, discardLogger)

	overview, err := svc.Overview(context.Background(), report.Filter{UserID: "u2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overview.UtilizationByUser) != 1 || overview.UtilizationByUser[0].UserID != "u2" {
		t.Errorf("expected only u2, got %+v", overview.UtilizationByUser)
	}
}

func TestReportService_UserChart(t *testing.T) {
	users, records := reportFixtures()
	svc := NewReportService(users, records, discardLogger)

	points, err := svc.UserChart(context.Background(), "u1", "2024-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 || points[0].Date != "2024-01-01" {
		t.Errorf("expected u1's single January day, got %+v", points)
	}

	points, err = svc.UserChart(context.Background(), "u1", "2030-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("a month with no records must yield no points, got %+v", points)
	}
}

func TestReportService_OverviewPDF(t *testing.T) {
	users, records := reportFixtures()
	svc := NewReportService(users, records, discardLogger)

	pdf, err := svc.OverviewPDF(context.Background(), report.Filter{Team: "Stem Educational Program Operations"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got %q...", pdf[:min(16, len(pdf))])
	}
}

func TestReportService_OverviewPDF_EmptyDataset(t *testing.T) {
	svc := NewReportService(&stubUserRepo{}, &stubRecordRepo{}, discardLogger)

	pdf, err := svc.OverviewPDF(context.Background(), report.Filter{})
	if err != nil {
		t.Fatalf("an empty dataset must still render: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}
