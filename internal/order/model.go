package order

import (
	"time"

	"webify-be/internal/checkout"

	"github.com/shopspring/decimal"
)

// PaymentStatus uses single-letter codes stored as-is in the database.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "P"
	PaymentComplete PaymentStatus = "C"
	PaymentFailed   PaymentStatus = "F"
	PaymentCanceled PaymentStatus = "X"
)

type Order struct {
	ID            uint            `json:"id"`
	OrderNumber   string          `json:"order_number"`
	UserID        uint            `json:"user_id"`
	PaymentStatus PaymentStatus   `json:"payment_status"`

	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`

	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`

	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem snapshots the product at purchase time. Later price edits on the
// product never touch placed orders.
type OrderItem struct {
	ID        uint            `json:"id"`
	OrderID   uint            `json:"order_id"`
	ProductID uint            `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type CreateOrderParams struct {
	UserID uint
	Form   checkout.ShippingForm
	Totals checkout.Totals
	Items  []OrderItem
}
