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

const topicOrdersPlaced = "orders.placed"

// OrderService validates and atomically commits multi-line orders against
// the catalog.
type OrderService struct {
	orders    repository.OrderRepository
	txRunner  repository.TxRunner
	publisher messaging.Publisher
}

func NewOrderService(
	orders repository.OrderRepository,
	txRunner repository.TxRunner,
	publisher messaging.Publisher,
) *OrderService {
	return &OrderService{
		orders:    orders,
		txRunner:  txRunner,
		publisher: publisher,
	}
}

// PlaceOrder commits an order in one transaction: every line is validated
// against current stock under a row lock, unit prices are snapshotted, stock
// is decremented and the total accumulated. Any failure rolls back the whole
// order. Lines are processed in caller order, so a product repeated across
// lines sees the earlier line's decrement.
func (s *OrderService) PlaceOrder(ctx context.Context, customerName, customerEmail string, lines []entity.OrderLine) (int64, error) {
	if len(lines) == 0 {
		return 0, entity.Validationf("order must contain at least one item")
	}
	for _, line := range lines {
		if line.Qty <= 0 {
			return 0, entity.Validationf("Quantity must be > 0")
		}
	}

	order := &entity.Order{
		Status:        entity.OrderStatusPlaced,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		TotalAmount:   decimal.Zero,
	}

	err := s.txRunner.WithinTx(ctx, func(tx repository.Tx) error {
		orderID, err := tx.InsertOrder(ctx, order)
		if err != nil {
			return err
		}

		total := decimal.Zero
		for _, line := range lines {
			p, err := tx.ProductForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if line.Qty <= 0 {
				return entity.Validationf("Quantity must be > 0")
			}
			if p.Stock < line.Qty {
				return entity.Validationf("Insufficient stock for %s (available %d)", p.Name, p.Stock)
			}

			lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
			item := entity.OrderItem{
				OrderID:   orderID,
				ProductID: p.ID,
				Qty:       line.Qty,
				UnitPrice: p.Price,
				LineTotal: lineTotal,
			}
			if err := tx.InsertItem(ctx, &item); err != nil {
				return err
			}
			if err := tx.UpdateStock(ctx, p.ID, p.Stock-line.Qty); err != nil {
				return err
			}

			order.Items = append(order.Items, item)
			total = total.Add(lineTotal)
		}

		order.TotalAmount = total
		return tx.SetOrderTotal(ctx, orderID, total)
	})
	if err != nil {
		return 0, err
	}

	slog.Info("Order placed", "order_id", order.ID, "total", order.TotalAmount, "items", len(order.Items))

	event := entity.OrderPlaced{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		TotalAmount:   order.TotalAmount,
		Items:         order.Items,
		PlacedAt:      time.Now(),
	}
	if err := s.publisher.PublishEvent(ctx, topicOrdersPlaced, strconv.FormatInt(order.ID, 10), event); err != nil {
		// The order is already durable; event delivery is best effort.
		slog.Error("Failed to publish OrderPlaced", "order_id", order.ID, "err", err)
	}
	return order.ID, nil
}

// GetOrder returns one order with its items.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	return s.orders.Get(ctx, id)
}

// ListOrders returns all orders, most recent first.
func (s *OrderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	return s.orders.List(ctx)
}
