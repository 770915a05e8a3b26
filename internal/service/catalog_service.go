package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrajkumar21/ecommerce/internal/entity"
	"github.com/mrajkumar21/ecommerce/internal/messaging"
	"github.com/mrajkumar21/ecommerce/internal/repository"
)

const topicCatalogStock = "catalog.stock"

// CatalogService owns product records and the single safe entry point for
// manual stock mutation.
type CatalogService struct {
	products  repository.ProductRepository
	txRunner  repository.TxRunner
	publisher messaging.Publisher
}

func NewCatalogService(
	products repository.ProductRepository,
	txRunner repository.TxRunner,
	publisher messaging.Publisher,
) *CatalogService {
	return &CatalogService{
		products:  products,
		txRunner:  txRunner,
		publisher: publisher,
	}
}

// CreateProduct persists a new product and returns its id.
func (s *CatalogService) CreateProduct(ctx context.Context, name, description string, price decimal.Decimal, stock int) (int64, error) {
	if name == "" {
		return 0, entity.Validationf("name is required")
	}
	if price.IsNegative() {
		return 0, entity.Validationf("price must not be negative")
	}
	if stock < 0 {
		return 0, entity.Validationf("stock must not be negative")
	}

	p := &entity.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
	}
	id, err := s.products.Create(ctx, p)
	if err != nil {
		return 0, err
	}

	slog.Info("Product created", "product_id", id, "name", name)
	return id, nil
}

// UpdateProduct applies the set fields of upd to an existing product. An
// update with no fields set still verifies the product exists.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, upd entity.ProductUpdate) error {
	if upd.Name != nil && *upd.Name == "" {
		return entity.Validationf("name is required")
	}
	if upd.Price != nil && upd.Price.IsNegative() {
		return entity.Validationf("price must not be negative")
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return entity.Validationf("stock must not be negative")
	}

	return s.txRunner.WithinTx(ctx, func(tx repository.Tx) error {
		p, err := tx.ProductForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if upd.IsZero() {
			return nil
		}
		upd.Apply(p)
		return tx.SaveProduct(ctx, p)
	})
}

// DeleteProduct removes a product. Products referenced by existing order
// items cannot be deleted.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Product deleted", "product_id", id)
	return nil
}

// ListProducts returns all products ordered by id ascending.
func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.products.List(ctx)
}

// AdjustStock applies a signed delta to a product's stock. The read and
// write happen under the same row lock placeOrder uses, so concurrent
// adjustments cannot lose updates or drive stock negative.
func (s *CatalogService) AdjustStock(ctx context.Context, id int64, delta int) error {
	var newStock int
	err := s.txRunner.WithinTx(ctx, func(tx repository.Tx) error {
		p, err := tx.ProductForUpdate(ctx, id)
		if err != nil {
			return err
		}
		newStock = p.Stock + delta
		if newStock < 0 {
			return entity.Validationf("Insufficient stock")
		}
		return tx.UpdateStock(ctx, id, newStock)
	})
	if err != nil {
		return err
	}

	slog.Info("Stock adjusted", "product_id", id, "delta", delta, "new_stock", newStock)

	event := entity.ProductStockAdjusted{
		ProductID:  id,
		Delta:      delta,
		NewStock:   newStock,
		AdjustedAt: time.Now(),
	}
	if err := s.publisher.PublishEvent(ctx, topicCatalogStock, strconv.FormatInt(id, 10), event); err != nil {
		// The adjustment is already durable; event delivery is best effort.
		slog.Error("Failed to publish ProductStockAdjusted", "product_id", id, "err", err)
	}
	return nil
}
