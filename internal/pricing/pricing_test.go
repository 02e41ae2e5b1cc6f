package pricing

import (
	"testing"

	"fashion-storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "%s: want %s, got %s", field, want, got)
}

func dressLine(qty int) domain.CartLine {
	return domain.CartLine{
		ID:            "p1",
		Title:         "Wrap Dress",
		Price:         d("800"),
		OriginalPrice: d("1000"),
		Offer:         &domain.Offer{Enabled: true, Type: domain.OfferPercentage, Value: d("20")},
		Quantity:      qty,
	}
}

func scarfLine() domain.CartLine {
	return domain.CartLine{ID: "p2", Title: "Silk Scarf", Price: d("300"), OriginalPrice: d("300"), Quantity: 1}
}

func TestSummarize_OfferCartAboveThreshold(t *testing.T) {
	s := Summarize([]domain.CartLine{dressLine(2)}, nil, DefaultShippingRules())

	assertDec(t, "2000", s.Subtotal, "subtotal")
	assertDec(t, "400", s.OfferDiscount, "offerDiscount")
	assertDec(t, "1600", s.PriceAfterOffer, "priceAfterOffer")
	assertDec(t, "0", s.Shipping, "shipping")
	assertDec(t, "1600", s.Total, "total")
	assertDec(t, "400", s.TotalSavings, "totalSavings")
	assert.Equal(t, 2, s.ItemCount)
}

func TestSummarize_ChargesShippingAtOrBelowThreshold(t *testing.T) {
	exactly := domain.CartLine{ID: "p3", Price: d("1000"), OriginalPrice: d("1000"), Quantity: 1}

	s := Summarize([]domain.CartLine{exactly}, nil, DefaultShippingRules())
	assertDec(t, "50", s.Shipping, "shipping")
	assertDec(t, "1050", s.Total, "total")

	s = Summarize([]domain.CartLine{scarfLine()}, nil, DefaultShippingRules())
	assertDec(t, "50", s.Shipping, "shipping")
	assertDec(t, "350", s.Total, "total")
}

func TestSummarize_FixedOfferDiscount(t *testing.T) {
	line := domain.CartLine{
		ID:            "p4",
		Price:         d("450"),
		OriginalPrice: d("500"),
		Offer:         &domain.Offer{Enabled: true, Type: domain.OfferFixed, Value: d("50")},
		Quantity:      3,
	}
	s := Summarize([]domain.CartLine{line}, nil, DefaultShippingRules())
	assertDec(t, "150", s.OfferDiscount, "offerDiscount")
	assertDec(t, "1350", s.PriceAfterOffer, "priceAfterOffer")
}

func TestSummarize_OfferFiguresReconcile(t *testing.T) {
	p := domain.Product{
		ID:    "p6",
		Price: d("99.99"),
		Offer: &domain.Offer{Enabled: true, Type: domain.OfferPercentage, Value: d("15")},
	}
	line := domain.LineFromProduct(p)

	s := Summarize([]domain.CartLine{line}, nil, DefaultShippingRules())
	assertDec(t, "99.99", s.Subtotal, "subtotal")
	assertDec(t, "15", s.OfferDiscount, "offerDiscount")
	assertDec(t, "84.99", s.PriceAfterOffer, "priceAfterOffer")
	assert.True(t, s.Subtotal.Equal(s.OfferDiscount.Add(s.PriceAfterOffer)))

	over := domain.CartLine{
		ID:            "p7",
		Price:         d("0"),
		OriginalPrice: d("100"),
		Offer:         &domain.Offer{Enabled: true, Type: domain.OfferFixed, Value: d("150")},
		Quantity:      2,
	}
	s = Summarize([]domain.CartLine{over}, nil, DefaultShippingRules())
	assertDec(t, "200", s.OfferDiscount, "offerDiscount")
	assertDec(t, "0", s.PriceAfterOffer, "priceAfterOffer")
	assert.True(t, s.TotalSavings.LessThanOrEqual(s.Subtotal))
}

func TestSummarize_IgnoresDisabledOrZeroOffers(t *testing.T) {
	disabled := scarfLine()
	disabled.Offer = &domain.Offer{Enabled: false, Type: domain.OfferPercentage, Value: d("30")}
	zero := scarfLine()
	zero.ID = "p5"
	zero.Offer = &domain.Offer{Enabled: true, Type: domain.OfferFixed, Value: d("0")}

	s := Summarize([]domain.CartLine{disabled, zero}, nil, DefaultShippingRules())
	assertDec(t, "0", s.OfferDiscount, "offerDiscount")
}

func TestSummarize_TrustsStoredPrice(t *testing.T) {
	// stored price disagrees with the offer; the stored value wins
	stale := dressLine(1)
	stale.Price = d("900")
	s := Summarize([]domain.CartLine{stale}, nil, DefaultShippingRules())
	assertDec(t, "900", s.PriceAfterOffer, "priceAfterOffer")
	assertDec(t, "200", s.OfferDiscount, "offerDiscount")
}

func TestSummarize_EmptyCart(t *testing.T) {
	s := Summarize(nil, nil, DefaultShippingRules())
	assertDec(t, "0", s.Total, "total")
	assertDec(t, "0", s.Shipping, "shipping")
}

func TestApply_PercentagePromo(t *testing.T) {
	s, err := Apply([]domain.CartLine{dressLine(2)}, " welcome10 ", DefaultShippingRules())
	require.NoError(t, err)
	assertDec(t, "160", s.PromoDiscount, "promoDiscount")
	assertDec(t, "1440", s.Total, "total")
	assertDec(t, "560", s.TotalSavings, "totalSavings")
	require.NotNil(t, s.Promo)
	assert.Equal(t, "WELCOME10", s.Promo.Code)
}

func TestApply_FixedPromoCappedAtPrice(t *testing.T) {
	cheap := domain.CartLine{ID: "p6", Price: d("60"), OriginalPrice: d("60"), Quantity: 1}
	s, err := Apply([]domain.CartLine{cheap}, "FLAT100", DefaultShippingRules())
	require.NoError(t, err)
	assertDec(t, "60", s.PromoDiscount, "promoDiscount")
	assertDec(t, "50", s.Total, "total")
}

func TestApply_ShippingPromoOverridesThreshold(t *testing.T) {
	lines := []domain.CartLine{scarfLine()}

	without, err := Apply(lines, "", DefaultShippingRules())
	require.NoError(t, err)
	assertDec(t, "50", without.Shipping, "shipping")

	with, err := Apply(lines, "FreeShip", DefaultShippingRules())
	require.NoError(t, err)
	assertDec(t, "0", with.Shipping, "shipping")
	assertDec(t, "300", with.Total, "total")
	assertDec(t, "0", with.PromoDiscount, "promoDiscount")
}

func TestApply_UnknownPromoLeavesTotalsUnchanged(t *testing.T) {
	lines := []domain.CartLine{dressLine(2)}
	base := Summarize(lines, nil, DefaultShippingRules())

	s, err := Apply(lines, "NOTREAL", DefaultShippingRules())
	require.ErrorIs(t, err, ErrInvalidPromo)
	assert.Nil(t, s.Promo)
	assertDec(t, base.Total.String(), s.Total, "total")
}

func TestSummarize_CustomRules(t *testing.T) {
	rules := ShippingRules{FreeAbove: d("250"), Fee: d("99")}
	s := Summarize([]domain.CartLine{scarfLine()}, nil, rules)
	assertDec(t, "0", s.Shipping, "shipping")
}

func TestPromos_SortedAndResolvable(t *testing.T) {
	promos := Promos()
	require.Len(t, promos, 4)
	for i, p := range promos {
		if i > 0 {
			assert.Less(t, promos[i-1].Code, p.Code)
		}
		got, err := LookupPromo(" " + p.Code + " ")
		require.NoError(t, err)
		assert.Equal(t, p.Code, got.Code)
	}
}
