package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestProductOfferPrice(t *testing.T) {
	cases := []struct {
		name  string
		price string
		offer *Offer
		want  string
		pct   int
	}{
		{"no offer", "1000", nil, "1000", 0},
		{"disabled", "1000", &Offer{Enabled: false, Type: OfferPercentage, Value: d("20")}, "1000", 0},
		{"percentage", "1000", &Offer{Enabled: true, Type: OfferPercentage, Value: d("20")}, "800", 20},
		{"fixed", "1000", &Offer{Enabled: true, Type: OfferFixed, Value: d("150")}, "850", 15},
		{"fixed above price", "100", &Offer{Enabled: true, Type: OfferFixed, Value: d("150")}, "0", 100},
		{"fractional", "999", &Offer{Enabled: true, Type: OfferPercentage, Value: d("15")}, "849.15", 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{Price: d(tc.price), Offer: tc.offer}
			assert.True(t, p.OfferPrice().Equal(d(tc.want)), "got %s", p.OfferPrice())
			assert.Equal(t, tc.pct, p.DiscountPercent())
		})
	}
}

func TestOfferUnitDiscount(t *testing.T) {
	pct := &Offer{Enabled: true, Type: OfferPercentage, Value: d("15")}
	assert.True(t, pct.UnitDiscount(d("99.99")).Equal(d("15.00")), "got %s", pct.UnitDiscount(d("99.99")))

	fixed := &Offer{Enabled: true, Type: OfferFixed, Value: d("150")}
	assert.True(t, fixed.UnitDiscount(d("100")).Equal(d("100")), "fixed discount is capped at the price")
	assert.True(t, fixed.UnitDiscount(d("0")).IsZero())

	var none *Offer
	assert.True(t, none.UnitDiscount(d("100")).IsZero())
}

func TestLineFromProduct(t *testing.T) {
	p := Product{
		ID:     "p1",
		Title:  "Linen Dress",
		Images: []string{"a.jpg", "b.jpg"},
		Price:  d("1000"),
		Stock:  4,
		Offer:  &Offer{Enabled: true, Type: OfferPercentage, Value: d("20"), Title: "Summer"},
	}
	line := LineFromProduct(p)

	assert.Equal(t, "p1", line.ID)
	assert.Equal(t, "a.jpg", line.Image)
	assert.Equal(t, 1, line.Quantity)
	assert.True(t, line.Price.Equal(d("800")))
	assert.True(t, line.OriginalPrice.Equal(d("1000")))
	if assert.NotNil(t, line.Discount) {
		assert.Equal(t, 20, *line.Discount)
	}
	if assert.NotNil(t, line.Stock) {
		assert.Equal(t, 4, *line.Stock)
	}
	// the line keeps its own copy of the offer
	p.Offer.Value = d("50")
	assert.True(t, line.Offer.Value.Equal(d("20")))
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := Invalid("phone", "required")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "phone: required", err.Error())
}
