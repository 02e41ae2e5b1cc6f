package wishlist

import (
	"context"
	"testing"

	"fashion-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	ids map[string][]string
}

func (r *memRepo) Get(_ context.Context, userID string) ([]string, error) {
	return append([]string{}, r.ids[userID]...), nil
}

func (r *memRepo) Add(_ context.Context, userID, productID string) ([]string, error) {
	for _, id := range r.ids[userID] {
		if id == productID {
			return r.Get(context.Background(), userID)
		}
	}
	r.ids[userID] = append(r.ids[userID], productID)
	return r.Get(context.Background(), userID)
}

func (r *memRepo) Remove(_ context.Context, userID, productID string) ([]string, error) {
	out := []string{}
	for _, id := range r.ids[userID] {
		if id != productID {
			out = append(out, id)
		}
	}
	r.ids[userID] = out
	return r.Get(context.Background(), userID)
}

type products map[string]bool

func (p products) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if !p[id] {
		return nil, domain.ErrNotFound
	}
	return &domain.Product{ID: id}, nil
}

func TestWishlist(t *testing.T) {
	ctx := context.Background()
	svc := New(&memRepo{ids: map[string][]string{}}, products{"p1": true, "p2": true})

	_, err := svc.Add(ctx, "u1", "p1")
	require.NoError(t, err)
	w, err := svc.Add(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, w.ProductIDs)

	_, err = svc.Add(ctx, "u1", "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	w, err = svc.Remove(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, w.ProductIDs)
}
