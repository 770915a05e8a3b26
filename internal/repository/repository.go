package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mrajkumar21/ecommerce/internal/entity"
)

// ProductRepository handles persistence for Products outside a shared
// transaction scope.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) (int64, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]entity.Product, error)
}

// OrderRepository handles read access to Orders and their items.
type OrderRepository interface {
	Get(ctx context.Context, id int64) (*entity.Order, error)
	List(ctx context.Context) ([]entity.Order, error)
}

// Tx is the set of operations available inside one transaction scope. Stock
// is always read through ProductForUpdate, which takes a row lock, so that
// concurrent read-modify-write cycles on the same product serialize instead
// of racing.
type Tx interface {
	ProductForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	SaveProduct(ctx context.Context, p *entity.Product) error
	UpdateStock(ctx context.Context, productID int64, stock int) error
	InsertOrder(ctx context.Context, o *entity.Order) (int64, error)
	InsertItem(ctx context.Context, item *entity.OrderItem) error
	SetOrderTotal(ctx context.Context, orderID int64, total decimal.Decimal) error
}

// TxRunner scopes a unit of work: fn's writes either all commit or all roll
// back. Returning an error from fn aborts the transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}
