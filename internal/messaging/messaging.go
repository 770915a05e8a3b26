package messaging

import (
	"context"

	"github.com/mrajkumar21/ecommerce/internal/entity"
)

// Publisher delivers domain events to a message broker after the owning
// transaction has committed. Delivery is best effort; it never participates
// in the transaction.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event entity.Event) error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(ctx context.Context, topic string, key string, event entity.Event) error {
	return nil
}
