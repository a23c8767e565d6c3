package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamops/opstracker/internal/api/metrics"
	"github.com/teamops/opstracker/internal/core/ports"
	"github.com/teamops/opstracker/internal/core/report"
)

// ReportHandler exposes the aggregation engine server-side under /api/reports.
type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// filterFromQuery maps the overview query parameters onto a typed filter.
// The literal "ALL" is accepted for team and userId and treated as absent,
// for compatibility with the dashboard's historical query strings.
func filterFromQuery(c echo.Context) report.Filter {
	f := report.Filter{
		DateStart: c.QueryParam("start"),
		DateEnd:   c.QueryParam("end"),
		Team:      c.QueryParam("team"),
		UserID:    c.QueryParam("userId"),
	}
	if f.Team == "ALL" {
		f.Team = ""
	}
	if f.UserID == "ALL" {
		f.UserID = ""
	}
	return f
}

// Overview returns every admin-dashboard aggregate for the given filter.
func (h *ReportHandler) Overview(c echo.Context) error {
	overview, err := h.reports.Overview(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return err
	}
	metrics.ReportsRenderedTotal.WithLabelValues("json").Inc()
	return c.JSON(http.StatusOK, overview)
}

// OverviewPDF renders the overview as a downloadable PDF.
func (h *ReportHandler) OverviewPDF(c echo.Context) error {
	pdf, err := h.reports.OverviewPDF(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="teamops-report.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// UserChart returns one user's expected-vs-actual daily series, optionally
// restricted to a calendar month (?month=YYYY-MM).
func (h *ReportHandler) UserChart(c echo.Context) error {
	userID := c.Param("id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user id is required")
	}

	chart, err := h.reports.UserChart(c.Request().Context(), userID, c.QueryParam("month"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chart)
}
