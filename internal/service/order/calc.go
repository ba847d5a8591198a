package order

import (
	"github.com/shopspring/decimal"

	"shophub/internal/domain"
)

// Flat shipping fee and tax rate applied to every order. Shipping is charged
// unconditionally, including for an empty cart (see DESIGN.md).
var (
	ShippingFee = decimal.New(999, -2) // 9.99
	TaxRate     = decimal.New(1, -1)   // 10%
)

// Totals is derived from cart contents and never cached across a mutation.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// MinorUnits returns the grand total in integer minor currency units, the
// amount requested from the payment provider.
func (t Totals) MinorUnits() int64 {
	return t.GrandTotal.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Calculate derives totals from cart lines. Line prices are the unit prices
// captured on the lines, in cents.
func Calculate(lines []domain.CartLine) Totals {
	var subtotalCents int64
	for _, line := range lines {
		subtotalCents += line.PriceCents * int64(line.Quantity)
	}
	return FromSubtotal(decimal.New(subtotalCents, -2))
}

// FromSubtotal derives totals from an already-computed subtotal. The
// payment-intent handler uses this after recomputing the subtotal from the
// items it received. Tax is rounded to cents before summing.
func FromSubtotal(subtotal decimal.Decimal) Totals {
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal:   subtotal.Round(2),
		Shipping:   ShippingFee,
		Tax:        tax,
		GrandTotal: subtotal.Add(ShippingFee).Add(tax).Round(2),
	}
}
