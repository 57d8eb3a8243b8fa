package domain

import (
	"context"

	"gescom/internal/core/id"
)

// Event is a domain event destined for the transactional outbox.
type Event struct {
	AggregateType string
	AggregateID   id.ID
	EventType     string
	Payload       any
}

// EventPublisher writes domain events so they are delivered
// atomically with the business transaction.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	PublishBatch(ctx context.Context, events []Event) error
}
