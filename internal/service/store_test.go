package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mrajkumar21/ecommerce/internal/entity"
	"github.com/mrajkumar21/ecommerce/internal/repository"
)

// memStore is an in-memory stand-in for the Postgres store. WithinTx
// snapshots all state up front and restores it when fn fails, giving the
// same all-or-nothing semantics the real transaction boundary provides.
type memStore struct {
	nextProductID int64
	nextOrderID   int64
	nextItemID    int64
	clock         time.Time

	products map[int64]*entity.Product
	orders   map[int64]*entity.Order
	items    []entity.OrderItem
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		products: make(map[int64]*entity.Product),
		orders:   make(map[int64]*entity.Order),
	}
}

func (s *memStore) now() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) snapshot() *memStore {
	cp := &memStore{
		nextProductID: s.nextProductID,
		nextOrderID:   s.nextOrderID,
		nextItemID:    s.nextItemID,
		clock:         s.clock,
		products:      make(map[int64]*entity.Product, len(s.products)),
		orders:        make(map[int64]*entity.Order, len(s.orders)),
		items:         append([]entity.OrderItem(nil), s.items...),
	}
	for id, p := range s.products {
		c := *p
		cp.products[id] = &c
	}
	for id, o := range s.orders {
		c := *o
		cp.orders[id] = &c
	}
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.nextProductID = snap.nextProductID
	s.nextOrderID = snap.nextOrderID
	s.nextItemID = snap.nextItemID
	s.clock = snap.clock
	s.products = snap.products
	s.orders = snap.orders
	s.items = snap.items
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) ProductForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, entity.NotFoundf("Product id %d not found", id)
	}
	c := *p
	return &c, nil
}

func (s *memStore) SaveProduct(ctx context.Context, p *entity.Product) error {
	if _, ok := s.products[p.ID]; !ok {
		return entity.NotFoundf("Product id %d not found", p.ID)
	}
	c := *p
	s.products[p.ID] = &c
	return nil
}

func (s *memStore) UpdateStock(ctx context.Context, productID int64, stock int) error {
	p, ok := s.products[productID]
	if !ok {
		return entity.NotFoundf("Product id %d not found", productID)
	}
	p.Stock = stock
	return nil
}

func (s *memStore) InsertOrder(ctx context.Context, o *entity.Order) (int64, error) {
	s.nextOrderID++
	o.ID = s.nextOrderID
	o.CreatedAt = s.now()
	c := *o
	c.Items = nil
	s.orders[o.ID] = &c
	return o.ID, nil
}

func (s *memStore) InsertItem(ctx context.Context, item *entity.OrderItem) error {
	s.nextItemID++
	item.ID = s.nextItemID
	s.items = append(s.items, *item)
	return nil
}

func (s *memStore) SetOrderTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	o, ok := s.orders[orderID]
	if !ok {
		return entity.NotFoundf("Order id %d not found", orderID)
	}
	o.TotalAmount = total
	return nil
}

func (s *memStore) Create(ctx context.Context, p *entity.Product) (int64, error) {
	s.nextProductID++
	p.ID = s.nextProductID
	p.CreatedAt = s.now()
	c := *p
	s.products[p.ID] = &c
	return p.ID, nil
}

func (s *memStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.products[id]; !ok {
		return entity.NotFoundf("Product id %d not found", id)
	}
	for _, item := range s.items {
		if item.ProductID == id {
			return entity.Validationf("product %d is referenced by existing orders", id)
		}
	}
	delete(s.products, id)
	return nil
}

func (s *memStore) List(ctx context.Context) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) Get(ctx context.Context, id int64) (*entity.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, entity.NotFoundf("Order id %d not found", id)
	}
	c := *o
	for _, item := range s.items {
		if item.OrderID == id {
			c.Items = append(c.Items, item)
		}
	}
	return &c, nil
}

type orderReads struct {
	s *memStore
}

func (r orderReads) Get(ctx context.Context, id int64) (*entity.Order, error) {
	return r.s.Get(ctx, id)
}

func (r orderReads) List(ctx context.Context) ([]entity.Order, error) {
	out := make([]entity.Order, 0, len(r.s.orders))
	for id := range r.s.orders {
		o, err := r.s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	topics []string
	keys   []string
	events []entity.Event
}

func (p *capturePublisher) PublishEvent(ctx context.Context, topic string, key string, event entity.Event) error {
	p.topics = append(p.topics, topic)
	p.keys = append(p.keys, key)
	p.events = append(p.events, event)
	return nil
}
