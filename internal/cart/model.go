package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the server copy of an authenticated user's cart. Totals are
// derived from the items on every read, never stored.
type Cart struct {
	ID            uint            `json:"id"`
	UserID        uint            `json:"user_id"`
	Items         []CartItem      `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type CartItem struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"product_id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CategoryName *string         `json:"category_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type AddItemParams struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateItemParams struct {
	Quantity int `json:"quantity"`
}

// recomputeTotals fills the derived fields by reducing over the items.
func (c *Cart) recomputeTotals() {
	qty := 0
	amount := decimal.Zero
	for _, it := range c.Items {
		qty += it.Quantity
		amount = amount.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	c.TotalQuantity = qty
	c.TotalAmount = amount
}
