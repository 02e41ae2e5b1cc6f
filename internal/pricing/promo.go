package pricing

import (
	"errors"
	"sort"
	"strings"

	"fashion-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidPromo is returned for a code missing from the promo table.
var ErrInvalidPromo = errors.New("invalid promo code")

var promoTable = map[string]domain.PromoCode{
	"WELCOME10": {Code: "WELCOME10", Type: domain.PromoPercentage, Discount: decimal.NewFromInt(10), Label: "10% off your order"},
	"FESTIVE20": {Code: "FESTIVE20", Type: domain.PromoPercentage, Discount: decimal.NewFromInt(20), Label: "20% festive discount"},
	"FLAT100":   {Code: "FLAT100", Type: domain.PromoFixed, Discount: decimal.NewFromInt(100), Label: "Flat 100 off"},
	"FREESHIP":  {Code: "FREESHIP", Type: domain.PromoShipping, Label: "Free shipping"},
}

// LookupPromo matches code, trimmed and case-insensitive, against the static table.
func LookupPromo(code string) (domain.PromoCode, error) {
	promo, ok := promoTable[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return domain.PromoCode{}, ErrInvalidPromo
	}
	return promo, nil
}

// Promos lists the static promo table ordered by code.
func Promos() []domain.PromoCode {
	out := make([]domain.PromoCode, 0, len(promoTable))
	for _, p := range promoTable {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Apply prices lines with the promo named by code. An empty code prices
// without a promo. An unknown code yields the no-promo summary together with
// ErrInvalidPromo so callers can show the error next to unchanged totals.
func Apply(lines []domain.CartLine, code string, rules ShippingRules) (Summary, error) {
	if strings.TrimSpace(code) == "" {
		return Summarize(lines, nil, rules), nil
	}
	promo, err := LookupPromo(code)
	if err != nil {
		return Summarize(lines, nil, rules), err
	}
	return Summarize(lines, &promo, rules), nil
}
