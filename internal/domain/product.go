package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OfferType string

const (
	OfferPercentage OfferType = "percentage"
	OfferFixed      OfferType = "fixed"
)

// Offer is a per-product promotional discount configured by an admin.
type Offer struct {
	Enabled bool            `json:"enabled"`
	Type    OfferType       `json:"type"`
	Value   decimal.Decimal `json:"value"`
	Title   string          `json:"title,omitempty"`
}

// Active reports whether the offer changes the price.
func (o *Offer) Active() bool {
	return o != nil && o.Enabled && o.Value.IsPositive()
}

// UnitDiscount is the amount the offer takes off one unit priced at price,
// rounded to two decimals and never more than price.
func (o *Offer) UnitDiscount(price decimal.Decimal) decimal.Decimal {
	if !o.Active() || !price.IsPositive() {
		return decimal.Zero
	}
	off := o.Value
	if o.Type == OfferPercentage {
		off = price.Mul(o.Value).Div(decimal.NewFromInt(100))
	}
	return decimal.Min(off, price).Round(2)
}

type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand,omitempty"`
	Material    string          `json:"material,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Images      []string        `json:"images,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Offer       *Offer          `json:"offer,omitempty"`
	Popularity  int             `json:"popularity"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// OfferPrice is the unit price after the active offer, floored at zero and
// rounded to two decimals.
func (p Product) OfferPrice() decimal.Decimal {
	out := p.Price.Sub(p.Offer.UnitDiscount(p.Price))
	if out.IsNegative() {
		return decimal.Zero
	}
	return out.Round(2)
}

// DiscountPercent is the whole-number percentage shown on product cards.
func (p Product) DiscountPercent() int {
	if !p.Offer.Active() || !p.Price.IsPositive() {
		return 0
	}
	off := p.Price.Sub(p.OfferPrice()).Mul(decimal.NewFromInt(100)).Div(p.Price)
	return int(off.Round(0).IntPart())
}
