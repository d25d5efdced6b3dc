package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// OrderRepository defines order persistence.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type OrderRepository interface {
	// InsertMut creates the mutation for the order row.
	InsertMut(order *domain.Order) (*spanner.Mutation, error)

	// LineMuts creates one mutation per order line.
	LineMuts(order *domain.Order) ([]*spanner.Mutation, error)
}

// OrderReadModel reads placed orders back.
type OrderReadModel interface {
	GetOrder(ctx context.Context, orderID string) (*OrderView, error)
}

// StockReserver builds the guard that decrements stock inside the commit.
type StockReserver interface {
	Reserve(order *domain.Order) committer.Guard
}

// OutboxEvent represents an enriched domain event ready for persistence.
type OutboxEvent struct {
	EventID       string
	EventType     string
	AggregateType string
	AggregateID   string
	Payload       string // JSON
	Status        string
}

// OutboxRepository defines the interface for outbox event persistence.
type OutboxRepository interface {
	InsertMut(event *OutboxEvent) *spanner.Mutation
	EnrichEvent(event domain.DomainEvent, payload string) *OutboxEvent
}
