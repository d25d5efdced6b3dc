package get_order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
)

type staticOrders map[string]*contracts.OrderView

func (s staticOrders) GetOrder(_ context.Context, id string) (*contracts.OrderView, error) {
	if o, ok := s[id]; ok {
		return o, nil
	}
	return nil, domain.ErrOrderNotFound
}

func TestQuery_Execute(t *testing.T) {
	q := NewQuery(staticOrders{"o1": {OrderID: "o1", Status: domain.StatusPlaced}})
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		o, err := q.Execute(ctx, " o1 ")
		require.NoError(t, err)
		assert.Equal(t, "o1", o.OrderID)
		assert.Equal(t, domain.StatusPlaced, o.Status)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := q.Execute(ctx, "o2")
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})

	t.Run("blank id", func(t *testing.T) {
		_, err := q.Execute(ctx, "  ")
		assert.ErrorIs(t, err, domain.ErrInvalidOrderID)
	})
}
