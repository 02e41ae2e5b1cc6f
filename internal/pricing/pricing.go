// Package pricing derives order-level money figures from cart lines.
//
// The same formula serves the cart summary, the checkout quote and the
// persisted order; there is no tax line.
//
// Offer discounts are rounded per unit so that subtotal minus offerDiscount
// equals priceAfterOffer. An empty cart pays no shipping. A fixed promo never
// takes more than priceAfterOffer, so the total cannot go below shipping.
package pricing

import (
	"fashion-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ShippingRules holds the flat-fee shipping policy.
type ShippingRules struct {
	// FreeAbove is exclusive: a price-after-offer equal to it still pays Fee.
	FreeAbove decimal.Decimal
	Fee       decimal.Decimal
}

// DefaultShippingRules returns the storefront defaults: free above 1000, else 50.
func DefaultShippingRules() ShippingRules {
	return ShippingRules{
		FreeAbove: decimal.NewFromInt(1000),
		Fee:       decimal.NewFromInt(50),
	}
}

// Summary is the derived pricing of a cart; nothing here is stored on the cart.
type Summary struct {
	Subtotal        decimal.Decimal   `json:"subtotal"`
	OfferDiscount   decimal.Decimal   `json:"offerDiscount"`
	PriceAfterOffer decimal.Decimal   `json:"priceAfterOffer"`
	PromoDiscount   decimal.Decimal   `json:"promoDiscount"`
	Shipping        decimal.Decimal   `json:"shipping"`
	Total           decimal.Decimal   `json:"total"`
	TotalSavings    decimal.Decimal   `json:"totalSavings"`
	ItemCount       int               `json:"itemCount"`
	Promo           *domain.PromoCode `json:"promo,omitempty"`
}

// Summarize computes the pricing of lines with an optional applied promo.
func Summarize(lines []domain.CartLine, promo *domain.PromoCode, rules ShippingRules) Summary {
	var s Summary
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		s.ItemCount += line.Quantity
		s.Subtotal = s.Subtotal.Add(line.OriginalPrice.Mul(qty))
		s.PriceAfterOffer = s.PriceAfterOffer.Add(line.Price.Mul(qty))
		s.OfferDiscount = s.OfferDiscount.Add(line.Offer.UnitDiscount(line.OriginalPrice).Mul(qty))
	}

	if s.PriceAfterOffer.GreaterThan(rules.FreeAbove) {
		s.Shipping = decimal.Zero
	} else {
		s.Shipping = rules.Fee
	}
	if len(lines) == 0 {
		s.Shipping = decimal.Zero
	}

	if promo != nil {
		applied := *promo
		s.Promo = &applied
		switch promo.Type {
		case domain.PromoPercentage:
			s.PromoDiscount = s.PriceAfterOffer.Mul(promo.Discount).Div(hundred).Round(2)
		case domain.PromoFixed:
			s.PromoDiscount = decimal.Min(promo.Discount, s.PriceAfterOffer)
		case domain.PromoShipping:
			s.Shipping = decimal.Zero
		}
	}

	s.Total = s.PriceAfterOffer.Sub(s.PromoDiscount).Add(s.Shipping)
	s.TotalSavings = s.OfferDiscount.Add(s.PromoDiscount)
	return s
}
