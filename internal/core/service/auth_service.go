package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/teamops/opstracker/internal/core/domain"
	"github.com/teamops/opstracker/internal/core/ports"
)

// AuthService implements login as a plain credential lookup. There is no
// hashing and no session token: the caller receives the user object and owns
// the session from there.
type AuthService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Bool("disabled", user.IsDisabled).Msg("login succeeded")
	clean := user.Sanitized()
	return &clean, nil
}
