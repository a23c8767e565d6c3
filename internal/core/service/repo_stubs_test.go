package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/teamops/opstracker/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     []domain.User
	createErr error
	updateErr error
}

func (r *stubUserRepo) List(context.Context) ([]domain.User, error) {
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByCredentials(_ context.Context, username, password string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Password == password {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.ID == u.ID || existing.Username == u.Username {
			return domain.ErrUserExists
		}
	}
	r.users = append(r.users, *u)
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for i := range r.users {
		if r.users[i].ID == u.ID {
			password := r.users[i].Password
			r.users[i] = *u
			if u.Password == "" {
				r.users[i].Password = password
			}
			clone := r.users[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubRecordRepo struct {
	records   []domain.ProductionRecord
	createErr error
	deleteErr error
}

func (r *stubRecordRepo) List(context.Context) ([]domain.ProductionRecord, error) {
	out := make([]domain.ProductionRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *stubRecordRepo) ListByUser(_ context.Context, userID string) ([]domain.ProductionRecord, error) {
	out := []domain.ProductionRecord{}
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubRecordRepo) Create(_ context.Context, rec *domain.ProductionRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.records = append(r.records, *rec)
	return nil
}

func (r *stubRecordRepo) Update(_ context.Context, rec *domain.ProductionRecord) (*domain.ProductionRecord, error) {
	for i := range r.records {
		if r.records[i].ID == rec.ID {
			r.records[i] = *rec
			clone := *rec
			return &clone, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *stubRecordRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrRecordNotFound
}

func (r *stubRecordRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	kept := r.records[:0]
	var removed int64
	for _, rec := range r.records {
		if rec.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return removed, nil
}
