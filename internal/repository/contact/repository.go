package contact

import (
	"context"

	"fashion-storefront/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.Contact) (*domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
	SetStatus(ctx context.Context, id string, status domain.ContactStatus) error
	Delete(ctx context.Context, id string) error
}
