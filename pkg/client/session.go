package client

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamops/opstracker/internal/core/domain"
)

// DefaultPollInterval is how often the session re-checks whether the active
// user has been disabled server-side.
const DefaultPollInterval = 30 * time.Second

// IdentityStore persists the authenticated identity across restarts.
type IdentityStore interface {
	Load() (*domain.User, error)
	Save(u *domain.User) error
	Clear() error
}

// FileIdentityStore keeps the identity as a JSON file on disk, the
// client-local equivalent of browser storage.
type FileIdentityStore struct {
	Path string
}

func (s *FileIdentityStore) Load() (*domain.User, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var u domain.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *FileIdentityStore) Save(u *domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.Path, b, 0o600)
}

func (s *FileIdentityStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Session owns the authenticated identity for one client process. It restores
// the stored identity before the first remote snapshot arrives and polls the
// server so an account disabled mid-session is logged out within one interval.
type Session struct {
	api      *API
	store    IdentityStore
	log      zerolog.Logger
	interval time.Duration

	mu      sync.Mutex
	current *domain.User

	// OnForcedLogout fires when the poll detects the active account was
	// disabled. Set before calling Watch.
	OnForcedLogout func(u domain.User)
}

func NewSession(api *API, store IdentityStore, interval time.Duration, log zerolog.Logger) *Session {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Session{api: api, store: store, log: log, interval: interval}
}

// Restore loads a previously stored identity, if any. Called once at startup,
// before any remote call.
func (s *Session) Restore() error {
	u, err := s.store.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the active identity, or nil when logged out.
func (s *Session) Current() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// Login authenticates and establishes the session. A disabled account is
// rejected with ErrAccountDisabled even when the credentials matched — the
// two failures stay distinguishable and neither creates a session.
func (s *Session) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user.IsDisabled {
		return nil, domain.ErrAccountDisabled
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	if err := s.store.Save(user); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session identity")
	}
	return user, nil
}

// Logout clears the session and the stored identity.
func (s *Session) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear stored identity")
	}
}

// Watch polls the user list until ctx is cancelled, forcing a logout when the
// active user flips to disabled server-side. Only the false→true transition
// triggers: an identity restored already-disabled is left for Login to refuse.
// Poll failures are logged and skipped; the next tick simply tries again, and
// whatever the latest poll returned is taken as the truth.
func (s *Session) Watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkDisabled(ctx)
		}
	}
}

func (s *Session) checkDisabled(ctx context.Context) {
	current := s.Current()
	if current == nil {
		return
	}

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("user status poll failed")
		return
	}

	for _, u := range users {
		if u.ID != current.ID {
			continue
		}
		if u.IsDisabled && !current.IsDisabled {
			s.log.Info().Str("user_id", u.ID).Msg("account disabled server-side, logging out")
			s.Logout()
			if s.OnForcedLogout != nil {
				s.OnForcedLogout(u)
			}
		}
		return
	}
}
