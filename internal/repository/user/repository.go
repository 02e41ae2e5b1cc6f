package user

import (
	"context"

	"fashion-storefront/internal/domain"
)

// Repository persists users keyed by phone number.
type Repository interface {
	// GetOrCreateByPhone returns the user for phone, creating it with isAdmin
	// when absent. isAdmin is ignored for existing users.
	GetOrCreateByPhone(ctx context.Context, phone string, isAdmin bool) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, u domain.User) (*domain.User, error)
	SetPhotoURL(ctx context.Context, id, url string) error
}
