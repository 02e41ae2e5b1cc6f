// Package seed loads a demo catalogue and coupon set for local development.
package seed

import (
	"context"
	"errors"
	"fmt"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/pricing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type CouponWriter interface {
	Create(ctx context.Context, c domain.Coupon) (*domain.Coupon, error)
}

// Apply upserts the demo products and creates a coupon row for every built-in
// promo code. Running it again leaves existing coupons untouched.
func Apply(ctx context.Context, products ProductWriter, coupons CouponWriter, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, p := range Products() {
		if _, err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %q: %w", p.Title, err)
		}
	}
	for _, promo := range pricing.Promos() {
		_, err := coupons.Create(ctx, domain.Coupon{
			Code:     promo.Code,
			Type:     promo.Type,
			Discount: promo.Discount,
			Label:    promo.Label,
			MinOrder: decimal.Zero,
			Active:   true,
		})
		if errors.Is(err, domain.ErrAlreadyExists) {
			logger.Debug("seed: coupon exists", zap.String("code", promo.Code))
			continue
		}
		if err != nil {
			return fmt.Errorf("create coupon %q: %w", promo.Code, err)
		}
	}
	return nil
}

// Products is the demo catalogue.
func Products() []domain.Product {
	price := decimal.NewFromInt
	return []domain.Product{
		{
			Title:       "Linen Wrap Dress",
			Description: "Breezy midi wrap dress in washed linen.",
			Category:    "Dresses",
			Brand:       "Aarna",
			Material:    "Linen",
			Tags:        []string{"summer", "midi"},
			Sizes:       []string{"XS", "S", "M", "L"},
			Price:       price(1899),
			Stock:       14,
			Offer:       &domain.Offer{Enabled: true, Type: domain.OfferPercentage, Value: price(20), Title: "Summer sale"},
		},
		{
			Title:       "Block Print Kurta",
			Description: "Hand block printed cotton kurta with side slits.",
			Category:    "Kurtas",
			Brand:       "Neel",
			Material:    "Cotton",
			Tags:        []string{"ethnic", "everyday"},
			Sizes:       []string{"S", "M", "L", "XL"},
			Price:       price(1299),
			Stock:       25,
		},
		{
			Title:       "Pleated Palazzo",
			Description: "Flowing high-waist palazzo pants.",
			Category:    "Bottoms",
			Brand:       "Neel",
			Material:    "Viscose",
			Tags:        []string{"ethnic"},
			Sizes:       []string{"S", "M", "L"},
			Price:       price(899),
			Stock:       30,
			Offer:       &domain.Offer{Enabled: true, Type: domain.OfferFixed, Value: price(150), Title: "Flat 150 off"},
		},
		{
			Title:       "Silk Stole",
			Description: "Lightweight pure silk stole.",
			Category:    "Accessories",
			Brand:       "Aarna",
			Material:    "Silk",
			Tags:        []string{"gift"},
			Price:       price(649),
			Stock:       8,
		},
		{
			Title:       "Embroidered Jacket",
			Description: "Cropped denim jacket with floral embroidery.",
			Category:    "Outerwear",
			Brand:       "Mira",
			Material:    "Denim",
			Tags:        []string{"winter", "layering"},
			Sizes:       []string{"S", "M", "L"},
			Price:       price(2499),
			Stock:       6,
		},
	}
}
