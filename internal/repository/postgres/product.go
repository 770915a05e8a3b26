package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/mrajkumar21/ecommerce/internal/entity"
	"github.com/mrajkumar21/ecommerce/internal/repository"
)

const pqForeignKeyViolation = "23503"

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository backed by Postgres.
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *entity.Product) (int64, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO products (name, description, price, stock) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		p.Name, p.Description, p.Price, p.Stock,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return 0, wrapPQ(err, "failed to insert product")
	}
	return p.ID, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return entity.Validationf("product %d is referenced by existing orders", id)
		}
		return wrapPQ(err, "failed to delete product")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if rows == 0 {
		return entity.NotFoundf("Product id %d not found", id)
	}
	return nil
}

func (r *productRepository) List(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, price, stock, created_at FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// wrapPQ turns Postgres constraint violations (class 23) into
// entity.IntegrityError and wraps everything else as-is.
func wrapPQ(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return &entity.IntegrityError{Err: err}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
