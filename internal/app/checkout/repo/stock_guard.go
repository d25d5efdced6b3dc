package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_product"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// StockReserver decrements catalog stock inside the order transaction.
type StockReserver struct {
	model *m_product.Model
}

// NewStockReserver creates a new StockReserver.
func NewStockReserver() contracts.StockReserver {
	return &StockReserver{model: m_product.NewModel()}
}

// Reserve returns a guard that re-reads the stock of every ordered product
// and emits the decrement mutations. A short product aborts the commit with
// cart.ErrOutOfStock; a product missing from the catalog with
// catalog.ErrProductNotFound.
func (s *StockReserver) Reserve(order *domain.Order) committer.Guard {
	wanted := make(map[string]int64, len(order.Lines))
	ids := make([]string, 0, len(order.Lines))
	for _, l := range order.Lines {
		if _, seen := wanted[l.ProductID]; !seen {
			ids = append(ids, l.ProductID)
		}
		wanted[l.ProductID] += int64(l.Quantity)
	}

	return func(ctx context.Context, r committer.RowReader) ([]*spanner.Mutation, error) {
		muts := make([]*spanner.Mutation, 0, len(ids))
		for _, id := range ids {
			row, err := r.ReadRow(ctx, m_product.TableName, spanner.Key{id}, []string{m_product.Stock})
			if err != nil {
				if spanner.ErrCode(err) == codes.NotFound {
					return nil, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, id)
				}
				return nil, fmt.Errorf("failed to read stock of %s: %w", id, err)
			}

			var stock int64
			if err := row.Column(0, &stock); err != nil {
				return nil, fmt.Errorf("failed to decode stock of %s: %w", id, err)
			}
			if stock < wanted[id] {
				return nil, fmt.Errorf("%w: %s has %d, wanted %d", cart.ErrOutOfStock, id, stock, wanted[id])
			}
			muts = append(muts, s.model.UpdateStockMut(id, stock-wanted[id]))
		}
		return muts, nil
	}
}
