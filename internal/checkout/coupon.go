package checkout

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidCoupon = errors.New("invalid coupon code")

type Coupon struct {
	Code    string          `json:"code"`
	Percent decimal.Decimal `json:"percent"`
}

// coupons is the static promotion table. Codes match case-insensitively.
var coupons = map[string]decimal.Decimal{
	"discount10": decimal.RequireFromString("0.10"),
}

func LookupCoupon(code string) (*Coupon, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	percent, ok := coupons[normalized]
	if !ok {
		return nil, ErrInvalidCoupon
	}
	return &Coupon{Code: normalized, Percent: percent}, nil
}

// DiscountFor returns the amount taken off the given subtotal, rounded to
// cents.
func (c *Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(c.Percent).Round(2)
}
