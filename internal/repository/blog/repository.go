package blog

import (
	"context"

	"fashion-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context, publishedOnly bool) ([]domain.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)
	GetByID(ctx context.Context, id string) (*domain.BlogPost, error)
	Create(ctx context.Context, p domain.BlogPost) (*domain.BlogPost, error)
	Update(ctx context.Context, p domain.BlogPost) (*domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
}
