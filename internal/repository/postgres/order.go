package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mrajkumar21/ecommerce/internal/entity"
	"github.com/mrajkumar21/ecommerce/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository backed by Postgres.
func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*entity.Order, error) {
	var o entity.Order
	err := r.db.QueryRowContext(ctx,
		"SELECT id, customer_name, customer_email, total_amount, status, created_at FROM orders WHERE id = $1",
		id,
	).Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.TotalAmount, &o.Status, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.NotFoundf("Order id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context) ([]entity.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, customer_name, customer_email, total_amount, status, created_at FROM orders ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, o *entity.Order) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, order_id, product_id, qty, unit_price, line_total FROM order_items WHERE order_id = $1 ORDER BY id",
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Qty, &item.UnitPrice, &item.LineTotal); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

type txRunner struct {
	db *sql.DB
}

// NewTxRunner creates the transaction boundary shared by the catalog and
// order services.
func NewTxRunner(db *sql.DB) repository.TxRunner {
	return &txRunner{db: db}
}

func (r *txRunner) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&sqlTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return wrapPQ(err, "failed to commit transaction")
	}
	return nil
}

type sqlTx struct {
	tx *sql.Tx
}

// ProductForUpdate locks the product row for the remainder of the
// transaction so concurrent stock mutations serialize.
func (s *sqlTx) ProductForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	err := s.tx.QueryRowContext(ctx,
		"SELECT id, name, description, price, stock, created_at FROM products WHERE id = $1 FOR UPDATE",
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.NotFoundf("Product id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}
	return &p, nil
}

func (s *sqlTx) SaveProduct(ctx context.Context, p *entity.Product) error {
	res, err := s.tx.ExecContext(ctx,
		"UPDATE products SET name = $1, description = $2, price = $3, stock = $4 WHERE id = $5",
		p.Name, p.Description, p.Price, p.Stock, p.ID,
	)
	if err != nil {
		return wrapPQ(err, "failed to update product")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if rows == 0 {
		return entity.NotFoundf("Product id %d not found", p.ID)
	}
	return nil
}

func (s *sqlTx) UpdateStock(ctx context.Context, productID int64, stock int) error {
	res, err := s.tx.ExecContext(ctx,
		"UPDATE products SET stock = $1 WHERE id = $2",
		stock, productID,
	)
	if err != nil {
		return wrapPQ(err, "failed to update product stock")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update product stock: %w", err)
	}
	if rows == 0 {
		return entity.NotFoundf("Product id %d not found", productID)
	}
	return nil
}

func (s *sqlTx) InsertOrder(ctx context.Context, o *entity.Order) (int64, error) {
	err := s.tx.QueryRowContext(ctx,
		"INSERT INTO orders (customer_name, customer_email, total_amount, status) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		o.CustomerName, o.CustomerEmail, o.TotalAmount, o.Status,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return 0, wrapPQ(err, "failed to insert order")
	}
	return o.ID, nil
}

func (s *sqlTx) InsertItem(ctx context.Context, item *entity.OrderItem) error {
	err := s.tx.QueryRowContext(ctx,
		"INSERT INTO order_items (order_id, product_id, qty, unit_price, line_total) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		item.OrderID, item.ProductID, item.Qty, item.UnitPrice, item.LineTotal,
	).Scan(&item.ID)
	if err != nil {
		return wrapPQ(err, "failed to insert order item")
	}
	return nil
}

func (s *sqlTx) SetOrderTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	_, err := s.tx.ExecContext(ctx,
		"UPDATE orders SET total_amount = $1 WHERE id = $2",
		total, orderID,
	)
	if err != nil {
		return wrapPQ(err, "failed to set order total")
	}
	return nil
}
