package domain

import (
	"time"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateType() string
	AggregateID() string
}

// OrderItem is one line of an OrderPlacedEvent.
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderPlacedEvent is emitted when an order is committed.
type OrderPlacedEvent struct {
	OrderID       string       `json:"orderId"`
	CartID        string       `json:"cartId"`
	PaymentMethod string       `json:"paymentMethod"`
	Installments  int          `json:"installments"`
	Payable       *money.Money `json:"payable"`
	Items         []OrderItem  `json:"items"`
	PlacedAt      time.Time    `json:"placedAt"`
}

func (e *OrderPlacedEvent) EventType() string {
	return "order.placed"
}

func (e *OrderPlacedEvent) AggregateType() string {
	return "order"
}

func (e *OrderPlacedEvent) AggregateID() string {
	return e.OrderID
}
