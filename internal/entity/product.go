package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog record. Stock is the number of units
// currently available and never goes negative.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductUpdate enumerates the fields updateProduct may change. A nil field
// leaves the current value untouched.
type ProductUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
}

// IsZero reports whether no field is set.
func (u ProductUpdate) IsZero() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Stock == nil
}

// Apply copies the set fields onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
}
