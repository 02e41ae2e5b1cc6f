package domain

import "github.com/shopspring/decimal"

type PromoType string

const (
	PromoPercentage PromoType = "percentage"
	PromoFixed      PromoType = "fixed"
	PromoShipping   PromoType = "shipping"
)

// PromoCode is a user-entered code effect applied transiently to a cart total.
type PromoCode struct {
	Code     string          `json:"code"`
	Type     PromoType       `json:"type"`
	Discount decimal.Decimal `json:"discount"`
	Label    string          `json:"label"`
}
