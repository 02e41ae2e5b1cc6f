package product

import (
	"context"

	"fashion-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// Upsert inserts or replaces the product identified by title+brand.
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	IncrementPopularity(ctx context.Context, id string, by int) error
}
