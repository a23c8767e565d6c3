package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"github.com/teamops/opstracker/internal/api/metrics"
	"github.com/teamops/opstracker/internal/core/ports"
	"github.com/teamops/opstracker/internal/core/report"
)

// ReportService loads the current snapshot from the store and runs the pure
// aggregation engine over it. The engine itself never touches I/O.
type ReportService struct {
	users   ports.UserRepository
	records ports.RecordRepository
	logger  zerolog.Logger
}

func NewReportService(users ports.UserRepository, records ports.RecordRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{users: users, records: records, logger: logger}
}

func (s *ReportService) Overview(ctx context.Context, f report.Filter) (*ports.Overview, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.Overview{
		Filter:            f,
		UtilizationByUser: report.UtilizationByUser(records, users, f),
		RecordsByTeam:     report.RecordsByTeam(records, f),
		TaskComposition:   report.TaskCompositionByTeam(records, f),
		Trend:             report.Trend(records, users, f),
	}, nil
}

func (s *ReportService) UserChart(ctx context.Context, userID, month string) ([]report.DailyChartPoint, error) {
	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return report.UserDailyChart(records, userID, month), nil
}

// OverviewPDF renders the overview aggregates as a printable A4 report:
// the per-user utilization table followed by the daily trend series.
func (s *ReportService) OverviewPDF(ctx context.Context, f report.Filter) ([]byte, error) {
	overview, err := s.Overview(ctx, f)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Utilization Overview", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Production & Utilization Overview")
	pdf.Ln(12)

	if f.DateStart != "" || f.DateEnd != "" || f.Team != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.Cell(0, 6, filterCaption(f))
		pdf.Ln(10)
	}

	// Per-user utilization table.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(55, 7, "User", "1", 0, "L", false, 0, "")
	pdf.CellFormat(70, 7, "Team", "1", 0, "L", false, 0, "")
	pdf.CellFormat(15, 7, "Days", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Avg h/day", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Util %", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range overview.UtilizationByUser {
		pdf.CellFormat(55, 7, row.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, row.Team, "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", row.Days), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", row.AverageHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.1f", row.UtilizationPercentage), "1", 1, "R", false, 0, "")
	}
	if len(overview.UtilizationByUser) == 0 {
		pdf.CellFormat(190, 7, "No matching records", "1", 1, "C", false, 0, "")
	}
	pdf.Ln(8)

	// Daily trend.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Daily Trend (per-person average hours)")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(40, 7, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Total minutes", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Avg h/person", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range overview.Trend {
		pdf.CellFormat(40, 7, p.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", p.TotalMinutes), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", p.PerPersonAverageHours), "1", 1, "R", false, 0, "")
	}
	if len(overview.Trend) == 0 {
		pdf.CellFormat(120, 7, "No trend data", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error().Err(err).Msg("pdf render failed")
		return nil, err
	}

	metrics.ReportsRenderedTotal.WithLabelValues("pdf").Inc()
	return buf.Bytes(), nil
}

func filterCaption(f report.Filter) string {
	caption := "Filter:"
	if f.DateStart != "" || f.DateEnd != "" {
		caption += fmt.Sprintf(" %s .. %s", orAny(f.DateStart), orAny(f.DateEnd))
	}
	if f.Team != "" {
		caption += " team=" + f.Team
	}
	if f.UserID != "" {
		caption += " user=" + f.UserID
	}
	return caption
}

func orAny(s string) string {
	if s == "" {
		return "*"
	}
	return s
}
