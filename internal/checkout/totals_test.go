package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	t.Run("NoCoupon", func(t *testing.T) {
		totals := ComputeTotals(decimal.RequireFromString("100.00"), nil)

		assert.Equal(t, "10.00", totals.Shipping.StringFixed(2))
		assert.Equal(t, "14.00", totals.Tax.StringFixed(2))
		assert.Equal(t, "124.00", totals.Total.StringFixed(2))
		assert.True(t, totals.Discount.IsZero())
	})

	t.Run("WithCoupon", func(t *testing.T) {
		coupon, err := LookupCoupon("discount10")
		require.NoError(t, err)

		totals := ComputeTotals(decimal.RequireFromString("25.00"), coupon)

		assert.Equal(t, "2.50", totals.Discount.StringFixed(2))
		// discounted subtotal 22.50, tax 3.15, shipping 10.00
		assert.Equal(t, "3.15", totals.Tax.StringFixed(2))
		assert.Equal(t, "35.65", totals.Total.StringFixed(2))
	})

	t.Run("ZeroSubtotal", func(t *testing.T) {
		totals := ComputeTotals(decimal.Zero, nil)

		assert.Equal(t, "10.00", totals.Total.StringFixed(2))
	})
}

func TestLookupCoupon(t *testing.T) {
	t.Run("CaseInsensitive", func(t *testing.T) {
		coupon, err := LookupCoupon("  DISCOUNT10 ")

		require.NoError(t, err)
		assert.Equal(t, "discount10", coupon.Code)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := LookupCoupon("discount99")

		assert.Equal(t, ErrInvalidCoupon, err)
	})
}
