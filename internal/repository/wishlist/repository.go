package wishlist

import "context"

type Repository interface {
	// Get returns an empty list when the user has no wishlist document.
	Get(ctx context.Context, userID string) ([]string, error)
	// Add appends productID unless already present (array-union).
	Add(ctx context.Context, userID, productID string) ([]string, error)
	Remove(ctx context.Context, userID, productID string) ([]string, error)
}
