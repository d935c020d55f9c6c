// Package checkout drives the two-step checkout flow: a shipping form, a
// payment review step, and the order totals both steps display.
package checkout

import "github.com/shopspring/decimal"

var (
	// taxRate is applied to the discounted subtotal.
	taxRate = decimal.RequireFromString("0.14")
	// shippingFee is flat per order.
	shippingFee = decimal.RequireFromString("10.00")
)

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives the order totals from a subtotal and an optional
// coupon. The discount comes off the subtotal before tax.
func ComputeTotals(subtotal decimal.Decimal, coupon *Coupon) Totals {
	discount := decimal.Zero
	if coupon != nil {
		discount = coupon.DiscountFor(subtotal)
	}

	discounted := subtotal.Sub(discount)
	if discounted.IsNegative() {
		discounted = decimal.Zero
	}

	tax := discounted.Mul(taxRate).Round(2)
	total := discounted.Add(tax).Add(shippingFee)

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shippingFee,
		Tax:      tax,
		Total:    total,
	}
}
