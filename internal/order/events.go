package order

import (
	"context"
	"time"
)

// Event is the message emitted after an order write commits.
type Event struct {
	Name       string    `json:"event"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	UserID     string    `json:"user_id"`
	ItemCount  int       `json:"item_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventCreated = "order.created"
	EventUpdated = "order.updated"
	EventDeleted = "order.deleted"
)

// Publisher pushes order events to downstream consumers. Publish
// failures must not fail the order write that already committed.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, e Event) error { return nil }
