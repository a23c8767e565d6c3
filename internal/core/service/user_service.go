package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teamops/opstracker/internal/core/domain"
	"github.com/teamops/opstracker/internal/core/ports"
)

// UserService owns the user lifecycle. Deleting a user cascades to their
// production records; the store itself knows nothing about the relationship.
type UserService struct {
	users   ports.UserRepository
	records ports.RecordRepository
	logger  zerolog.Logger
}

func NewUserService(users ports.UserRepository, records ports.RecordRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, records: records, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	return out, nil
}

func (s *UserService) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	if u.Username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if u.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !u.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, u.Role)
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	if err := s.users.Create(ctx, &u); err != nil {
		s.logger.Error().Err(err).Str("username", u.Username).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", u.ID).Str("username", u.Username).Msg("user created")
	clean := u.Sanitized()
	return &clean, nil
}

func (s *UserService) Update(ctx context.Context, u domain.User) (*domain.User, error) {
	if u.ID == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	if u.Role != "" && !u.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, u.Role)
	}

	updated, err := s.users.Update(ctx, &u)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", u.ID).Bool("disabled", updated.IsDisabled).Msg("user updated")
	clean := updated.Sanitized()
	return &clean, nil
}

// Delete removes the user and cascades to every record they own. The cascade
// runs after the user delete succeeded; a missing user removes nothing.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", domain.ErrValidation)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	removed, err := s.records.DeleteByUser(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("record cascade failed after user delete")
		return err
	}

	s.logger.Info().Str("user_id", id).Int64("records_removed", removed).Msg("user deleted")
	return nil
}

// EnsureDefaultAdmin provisions the bootstrap admin when no user with its
// fixed ID exists yet.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context) error {
	_, err := s.users.FindByID(ctx, domain.DefaultAdmin.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	admin := domain.DefaultAdmin
	if err := s.users.Create(ctx, &admin); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", admin.ID).Msg("default admin provisioned")
	return nil
}
