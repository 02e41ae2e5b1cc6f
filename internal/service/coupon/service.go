package coupon

import (
	"context"
	"strings"
	"time"

	"fashion-storefront/internal/domain"
	couponrepo "fashion-storefront/internal/repository/coupon"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo couponrepo.Repository
}

func New(repo couponrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Code      string           `json:"code"`
	Type      domain.PromoType `json:"type"`
	Discount  decimal.Decimal  `json:"discount"`
	Label     string           `json:"label"`
	MinOrder  decimal.Decimal  `json:"minOrder"`
	Active    *bool            `json:"active"`
	ExpiresAt *time.Time       `json:"expiresAt"`
}

func (s *Service) List(ctx context.Context) ([]domain.Coupon, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Coupon, error) {
	c, err := in.toCoupon()
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Coupon, error) {
	c, err := in.toCoupon()
	if err != nil {
		return nil, err
	}
	c.ID = id
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (in Input) toCoupon() (domain.Coupon, error) {
	c := domain.Coupon{
		Code:      strings.ToUpper(strings.TrimSpace(in.Code)),
		Type:      in.Type,
		Discount:  in.Discount,
		Label:     strings.TrimSpace(in.Label),
		MinOrder:  in.MinOrder,
		Active:    true,
		ExpiresAt: in.ExpiresAt,
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	if c.Code == "" {
		return c, domain.Invalid("code", "required")
	}
	if strings.ContainsAny(c.Code, " \t") {
		return c, domain.Invalid("code", "must not contain spaces")
	}
	switch c.Type {
	case domain.PromoPercentage:
		if !c.Discount.IsPositive() || c.Discount.GreaterThan(decimal.NewFromInt(100)) {
			return c, domain.Invalid("discount", "percentage must be between 0 and 100")
		}
	case domain.PromoFixed:
		if !c.Discount.IsPositive() {
			return c, domain.Invalid("discount", "must be positive")
		}
	case domain.PromoShipping:
		c.Discount = decimal.Zero
	default:
		return c, domain.Invalid("type", "must be percentage, fixed or shipping")
	}
	if c.MinOrder.IsNegative() {
		return c, domain.Invalid("minOrder", "must not be negative")
	}
	return c, nil
}
