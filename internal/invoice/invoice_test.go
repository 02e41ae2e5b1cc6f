package invoice

import (
	"bytes"
	"testing"
	"time"

	"fashion-storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_WritesPDF(t *testing.T) {
	order := domain.Order{
		ID: "o-123",
		Items: []domain.CartLine{
			{ID: "p1", Title: "Linen Wrap Dress", Price: decimal.NewFromInt(800), OriginalPrice: decimal.NewFromInt(1000), Quantity: 2},
		},
		Subtotal:        decimal.NewFromInt(2000),
		OfferDiscount:   decimal.NewFromInt(400),
		Discount:        decimal.Zero,
		Shipping:        decimal.Zero,
		Total:           decimal.NewFromInt(1600),
		DeliveryAddress: domain.Address{FullName: "Meera Rao", Phone: "9876543210", Line1: "12 MG Road", City: "Pune", State: "MH", Pincode: "411001"},
		Status:          domain.OrderShipped,
		PaymentStatus:   domain.PaymentPaid,
		CreatedAt:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Seller{Name: "Storefront", Email: "care@example.com"}, order))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
