// Package ports declares the boundaries between the core services and the
// infrastructure that backs them.
package ports

import (
	"context"

	"github.com/teamops/opstracker/internal/core/domain"
)

// UserRepository persists users in the record store.
type UserRepository interface {
	// List returns every user. Passwords are included; callers strip them
	// before anything leaves the process.
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByCredentials matches username and password exactly; returns
	// domain.ErrInvalidCredentials when no user matches.
	FindByCredentials(ctx context.Context, username, password string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	// Update applies the given fields to the user with u.ID; returns
	// domain.ErrUserNotFound when it does not exist.
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// RecordRepository persists production records in the record store.
type RecordRepository interface {
	List(ctx context.Context) ([]domain.ProductionRecord, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ProductionRecord, error)
	Create(ctx context.Context, r *domain.ProductionRecord) error
	Update(ctx context.Context, r *domain.ProductionRecord) (*domain.ProductionRecord, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes every record owned by userID and reports how many
	// were removed. Used by the user-deletion cascade.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
