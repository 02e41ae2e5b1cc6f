package wishlist

import (
	"context"
	"strings"

	"fashion-storefront/internal/domain"
	wishlistrepo "fashion-storefront/internal/repository/wishlist"
)

type productReader interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	repo     wishlistrepo.Repository
	products productReader
}

func New(repo wishlistrepo.Repository, products productReader) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.Wishlist, error) {
	ids, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Wishlist{UserID: userID, ProductIDs: ids}, nil
}

// Add is idempotent; the product must exist.
func (s *Service) Add(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.Invalid("productId", "required")
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	ids, err := s.repo.Add(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	return &domain.Wishlist{UserID: userID, ProductIDs: ids}, nil
}

func (s *Service) Remove(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
	ids, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	return &domain.Wishlist{UserID: userID, ProductIDs: ids}, nil
}
