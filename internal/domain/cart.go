package domain

import "github.com/shopspring/decimal"

// CartLine is one product entry in a cart. Price is the unit price already net
// of any per-item offer at the time the line was added; OriginalPrice is the
// pre-offer reference. Price is never re-derived from the catalogue, so it can
// go stale if the product's offer changes while the line sits in a cart.
type CartLine struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Image         string          `json:"image,omitempty"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Discount      *int            `json:"discount,omitempty"`
	Offer         *Offer          `json:"offer,omitempty"`
	Quantity      int             `json:"quantity"`
	Stock         *int            `json:"stock,omitempty"`
}

// LineFromProduct snapshots a catalogue product into a quantity-1 cart line.
func LineFromProduct(p Product) CartLine {
	line := CartLine{
		ID:            p.ID,
		Title:         p.Title,
		Price:         p.OfferPrice(),
		OriginalPrice: p.Price,
		Quantity:      1,
	}
	if len(p.Images) > 0 {
		line.Image = p.Images[0]
	}
	if p.Offer.Active() {
		offer := *p.Offer
		line.Offer = &offer
		pct := p.DiscountPercent()
		line.Discount = &pct
	}
	stock := p.Stock
	line.Stock = &stock
	return line
}
