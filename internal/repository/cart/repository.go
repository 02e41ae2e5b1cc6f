package cart

import (
	"context"

	"fashion-storefront/internal/domain"
)

// Repository persists the remote cart document of a signed-in user.
// The whole item array is replaced on every save.
type Repository interface {
	// Get returns domain.ErrNotFound when the user has no cart document yet.
	Get(ctx context.Context, userID string) ([]domain.CartLine, error)
	Put(ctx context.Context, userID string, items []domain.CartLine) error
}

// GuestRepository holds the cart of a guest before sign-in.
type GuestRepository interface {
	// Get returns the raw serialized line array, or nil when absent.
	Get(ctx context.Context, guestID string) ([]byte, error)
	Put(ctx context.Context, guestID string, raw []byte) error
	Delete(ctx context.Context, guestID string) error
}
