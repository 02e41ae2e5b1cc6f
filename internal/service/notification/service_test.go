package notification

import (
	"context"
	"errors"
	"testing"

	"fashion-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
)

type stubRepo struct {
	created []domain.Notification
	err     error
}

func (r *stubRepo) Create(_ context.Context, n domain.Notification) (*domain.Notification, error) {
	if r.err != nil {
		return nil, r.err
	}
	n.ID = "n1"
	r.created = append(r.created, n)
	return &n, nil
}
func (r *stubRepo) List(context.Context) ([]domain.Notification, error) { return r.created, nil }
func (r *stubRepo) MarkRead(context.Context, string) error { return nil }
func (r *stubRepo) MarkAllRead(context.Context) (int64, error) { return 0, nil }
func (r *stubRepo) Delete(context.Context, string) error { return nil }

func TestNotify_WritesEntry(t *testing.T) {
	repo := &stubRepo{}
	New(repo, nil).Notify(context.Background(), domain.NotifyOrder, "Order placed", "Order #1", "/orders/1")

	if assert.Len(t, repo.created, 1) {
		assert.Equal(t, domain.NotifyOrder, repo.created[0].Type)
		assert.Equal(t, "/orders/1", repo.created[0].Link)
	}
}

func TestNotify_SwallowsFailure(t *testing.T) {
	repo := &stubRepo{err: errors.New("db down")}
	assert.NotPanics(t, func() {
		New(repo, nil).Notify(context.Background(), domain.NotifyBlog, "New post", "", "")
	})
}
