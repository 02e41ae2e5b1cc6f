// Package invoice renders an order as a one-page PDF.
package invoice

import (
	"fmt"
	"io"
	"strings"

	"fashion-storefront/internal/domain"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// Seller is printed in the invoice header.
type Seller struct {
	Name    string
	Address string
	Email   string
}

// Render writes the PDF for o to w.
func Render(w io.Writer, seller Seller, o domain.Order) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+o.ID, true)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(seller.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if seller.Address != "" {
		pdf.CellFormat(0, 5, tr(seller.Address), "", 1, "L", false, 0, "")
	}
	if seller.Email != "" {
		pdf.CellFormat(0, 5, tr(seller.Email), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "INVOICE", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Order: "+o.ID, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Date: "+o.CreatedAt.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Status: %s / Payment: %s", o.Status, o.PaymentStatus), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Ship to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, l := range addressLines(o.DeliveryAddress) {
		pdf.CellFormat(0, 5, tr(l), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{90, 20, 35, 35}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range []string{"Item", "Qty", "Unit price", "Amount"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range o.Items {
		amount := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		pdf.CellFormat(widths[0], 6, tr(truncate(line.Title, 50)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprint(line.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, money(line.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, money(amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(3)

	totals := []struct {
		label string
		value string
	}{
		{"Subtotal", money(o.Subtotal)},
		{"Offer discount", "-" + money(o.OfferDiscount)},
		{"Promo discount", "-" + money(o.Discount)},
		{"Shipping", money(o.Shipping)},
	}
	if o.PromoCode != "" {
		totals[2].label = "Promo discount (" + o.PromoCode + ")"
	}
	for _, t := range totals {
		pdf.CellFormat(145, 6, t.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, t.value, "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(145, 7, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, money(o.Total), "T", 1, "R", false, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render invoice %s: %w", o.ID, err)
	}
	return pdf.Output(w)
}

func money(d decimal.Decimal) string {
	return "Rs. " + d.StringFixed(2)
}

func addressLines(a domain.Address) []string {
	lines := []string{a.FullName, a.Line1}
	if a.Line2 != "" {
		lines = append(lines, a.Line2)
	}
	lines = append(lines, strings.TrimSpace(fmt.Sprintf("%s, %s %s", a.City, a.State, a.Pincode)), "Phone: "+a.Phone)
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
