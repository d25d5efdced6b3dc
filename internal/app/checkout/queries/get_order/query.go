package get_order

import (
	"context"
	"strings"

	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
)

// Query handles the get order query use case.
type Query struct {
	readModel contracts.OrderReadModel
}

// NewQuery creates a new get order query.
func NewQuery(readModel contracts.OrderReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute retrieves a placed order by ID.
func (q *Query) Execute(ctx context.Context, orderID string) (*contracts.OrderView, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, domain.ErrInvalidOrderID
	}
	return q.readModel.GetOrder(ctx, orderID)
}
