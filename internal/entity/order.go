package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is reserved for future workflow; every order is created as
// PLACED and no transitions are defined.
type OrderStatus string

const OrderStatusPlaced OrderStatus = "PLACED"

// Order is a customer order. TotalAmount always equals the sum of its
// items' line totals.
type Order struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItem     `json:"items"`
}

// OrderItem is one line of an order. UnitPrice is a snapshot of the
// product's price at placement time and never changes afterwards.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderLine is a (product, quantity) pair supplied by the caller when
// placing an order.
type OrderLine struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}
