package payment

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusInitiated Status = "initiated"
	StatusPaid      Status = "paid"
	StatusFailed    Status = "failed"
)

type Payment struct {
	ID             uint      `json:"id"`
	OrderID        uint      `json:"order_id"`
	UserID         uint      `json:"user_id"`
	GatewayOrderID int64     `json:"gateway_order_id"`
	PaymentKey     string    `json:"-"`
	TransactionID  *string   `json:"transaction_id,omitempty"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Session is what a client needs to open the hosted payment frame.
type Session struct {
	PaymentID  uint   `json:"payment_id"`
	PaymentKey string `json:"payment_key"`
	IframeID   string `json:"iframe_id"`
	IframeURL  string `json:"iframe_url"`
}

type CreateSessionParams struct {
	OrderID uint `json:"order_id"`
}

type ConfirmParams struct {
	PaymentID     uint   `json:"payment_id"`
	TransactionID string `json:"transaction_id"`
	Status        Status `json:"status"`
}

// BillingData mirrors what the gateway requires on a payment key request.
// Fields the storefront does not collect are sent as "NA".
type BillingData struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Apartment   string `json:"apartment"`
	Floor       string `json:"floor"`
	Street      string `json:"street"`
	Building    string `json:"building"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	Country     string `json:"country"`
	State       string `json:"state"`
}

// WebhookEvent is the parsed gateway callback.
type WebhookEvent struct {
	Event string `json:"event"`
	Order struct {
		ID int64 `json:"id"`
	} `json:"order"`
	Transaction struct {
		ID int64 `json:"id"`
	} `json:"transaction"`
}

const (
	EventPaymentSucceeded = "payment_succeeded"
	EventPaymentFailed    = "payment_failed"
)

// toCents converts a decimal amount to the gateway's minor units.
func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func formatTransactionID(id int64) string {
	return strconv.FormatInt(id, 10)
}
