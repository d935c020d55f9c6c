package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategoryName *string         `json:"category_name,omitempty"`
	PhotoURL     *string         `json:"photo,omitempty"`
	LiveDemoURL  *string         `json:"live_demo_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type QueryOptions struct {
	Search   *string
	Category *string
	Limit    *uint16
	Page     *uint16
}
