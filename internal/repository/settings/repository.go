package settings

import (
	"context"

	"fashion-storefront/internal/domain"
)

const BannerKey = "banner"

type Repository interface {
	GetBanner(ctx context.Context) (*domain.Banner, error)
	PutBanner(ctx context.Context, b domain.Banner) (*domain.Banner, error)
}
