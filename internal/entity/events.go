package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a domain event published after a successful commit.
type Event interface {
	EventType() string
}

// OrderPlaced is emitted when an order has been committed.
type OrderPlaced struct {
	OrderID       int64           `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Items         []OrderItem     `json:"items"`
	PlacedAt      time.Time       `json:"placed_at"`
}

func (e OrderPlaced) EventType() string { return "OrderPlaced" }

// ProductStockAdjusted is emitted when a manual stock adjustment has been
// committed.
type ProductStockAdjusted struct {
	ProductID  int64     `json:"product_id"`
	Delta      int       `json:"delta"`
	NewStock   int       `json:"new_stock"`
	AdjustedAt time.Time `json:"adjusted_at"`
}

func (e ProductStockAdjusted) EventType() string { return "ProductStockAdjusted" }
