package ports

import (
	"context"

	"github.com/teamops/opstracker/internal/core/domain"
	"github.com/teamops/opstracker/internal/core/report"
)

// AuthService checks credentials against the store.
type AuthService interface {
	// Login returns the matching user with the password stripped, or
	// domain.ErrInvalidCredentials. Disabled accounts still authenticate
	// here; rejecting them is the session owner's decision.
	Login(ctx context.Context, username, password string) (*domain.User, error)
}

// UserService owns the user lifecycle, including the record cascade on delete.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	Update(ctx context.Context, u domain.User) (*domain.User, error)
	// Delete removes the user and every production record owned by them.
	Delete(ctx context.Context, id string) error
	// EnsureDefaultAdmin provisions the bootstrap admin when missing.
	EnsureDefaultAdmin(ctx context.Context) error
}

// RecordService owns the production-record lifecycle.
type RecordService interface {
	List(ctx context.Context) ([]domain.ProductionRecord, error)
	Create(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error)
	Update(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error)
	Delete(ctx context.Context, id string) error
}

// Overview bundles every admin-dashboard aggregate for one filter.
type Overview struct {
	Filter            report.Filter                `json:"filter"`
	UtilizationByUser []report.UserUtilization     `json:"utilizationByUser"`
	RecordsByTeam     []report.TeamCount           `json:"recordsByTeam"`
	TaskComposition   []report.TeamTaskComposition `json:"taskCompositionByTeam"`
	Trend             []report.TrendPoint          `json:"trend"`
}

// ReportService runs the aggregation engine over the current store contents.
type ReportService interface {
	Overview(ctx context.Context, f report.Filter) (*Overview, error)
	// OverviewPDF renders the overview as a printable report.
	OverviewPDF(ctx context.Context, f report.Filter) ([]byte, error)
	UserChart(ctx context.Context, userID, month string) ([]report.DailyChartPoint, error)
}
