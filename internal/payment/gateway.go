package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway abstracts the hosted payment provider. The production
// implementation is the Paymob client; tests swap in a mock.
type Gateway interface {
	// CreateSession runs the provider's handshake for an order and returns
	// the gateway order id plus the single-use payment key.
	CreateSession(ctx context.Context, orderID uint, amount decimal.Decimal, billing BillingData) (gatewayOrderID int64, paymentKey string, err error)

	// IframeURL builds the hosted payment frame URL for a payment key.
	IframeURL(paymentKey string) string

	// VerifySignature checks a webhook body against its signature header.
	VerifySignature(body []byte, signature string) bool
}
