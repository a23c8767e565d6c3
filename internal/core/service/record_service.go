package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teamops/opstracker/internal/api/metrics"
	"github.com/teamops/opstracker/internal/core/domain"
	"github.com/teamops/opstracker/internal/core/ports"
)

// RecordService owns the production-record lifecycle. All validation happens
// here, before the store sees anything; updates are last-write-wins with no
// version checks.
type RecordService struct {
	records ports.RecordRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewRecordService(records ports.RecordRepository, users ports.UserRepository, logger zerolog.Logger) *RecordService {
	return &RecordService{records: records, users: users, logger: logger}
}

func (s *RecordService) List(ctx context.Context) ([]domain.ProductionRecord, error) {
	return s.records.List(ctx)
}

func (s *RecordService) Create(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error) {
	normalizeTaskTime(&r)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.UserName == "" {
		// Denormalized snapshot of the owner's name at creation time.
		// Deliberately never refreshed on later renames.
		owner, err := s.users.FindByID(ctx, r.UserID)
		if err != nil {
			return nil, err
		}
		r.UserName = owner.Name
	}

	if err := s.records.Create(ctx, &r); err != nil {
		s.logger.Error().Err(err).Str("user_id", r.UserID).Msg("failed to create record")
		return nil, err
	}

	metrics.RecordsCreatedTotal.WithLabelValues(r.Team).Inc()
	s.logger.Info().Str("record_id", r.ID).Str("user_id", r.UserID).Str("task", r.ProcessName).Msg("record created")
	return &r, nil
}

func (s *RecordService) Update(ctx context.Context, r domain.ProductionRecord) (*domain.ProductionRecord, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	normalizeTaskTime(&r)
	if err := r.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.records.Update(ctx, &r)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("record_id", r.ID).Msg("record updated")
	return updated, nil
}

func (s *RecordService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("record_id", id).Msg("record deleted")
	return nil
}

// normalizeTaskTime fills totalUtilization from the task catalog for
// fixed-duration tasks. Runtime tasks and unknown task names keep whatever
// the caller entered.
func normalizeTaskTime(r *domain.ProductionRecord) {
	task, ok := domain.LookupTask(r.ProcessName)
	if !ok || task.Runtime() {
		return
	}
	r.TotalUtilization = task.Minutes
}
