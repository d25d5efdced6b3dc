package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_order"
	"github.com/light-bringer/storefront-service/internal/models/m_order_line"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

// OrderReadModel implements contracts.OrderReadModel for Spanner.
type OrderReadModel struct {
	client *spanner.Client
}

// NewOrderReadModel creates a new OrderReadModel.
func NewOrderReadModel(client *spanner.Client) contracts.OrderReadModel {
	return &OrderReadModel{client: client}
}

// LinesStatement selects the lines of one order in line id order.
func LinesStatement(orderID string) spanner.Statement {
	return query.From(m_order_line.TableName).
		Select(m_order_line.Columns()...).
		Where(query.Eq(m_order_line.OrderID, orderID)).
		OrderBy(m_order_line.LineID, query.Asc).
		Build()
}

// GetOrder reads an order and its lines from one consistent snapshot.
func (rm *OrderReadModel) GetOrder(ctx context.Context, orderID string) (*contracts.OrderView, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidOrderID
	}

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_order.TableName, spanner.Key{orderID}, m_order.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	var data m_order.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse order: %w", err)
	}
	view := dataToView(&data)

	iter := txn.Query(ctx, LinesStatement(orderID))
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate order lines: %w", err)
		}

		var line m_order_line.Data
		if err := row.ToStruct(&line); err != nil {
			return nil, fmt.Errorf("failed to parse order line: %w", err)
		}
		view.Lines = append(view.Lines, contracts.OrderLineView{
			LineID:    line.LineID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  int(line.Quantity),
			UnitPrice: money.FromCents(line.UnitPriceCents),
			Services:  money.FromCents(line.ServicesCents),
		})
	}

	return view, nil
}

func dataToView(d *m_order.Data) *contracts.OrderView {
	return &contracts.OrderView{
		OrderID:        d.OrderID,
		CartID:         d.CartID,
		Status:         d.Status,
		PostalCode:     d.PostalCode,
		ShippingMethod: d.ShippingMethod,
		PaymentMethod:  d.PaymentMethod,
		CouponCode:     d.CouponCode.StringVal,
		Installments:   int(d.Installments),
		GrossTotal:     money.FromCents(d.GrossCents),
		CouponDiscount: money.FromCents(d.CouponDiscountCents),
		ShippingCost:   money.FromCents(d.ShippingCents),
		FinalTotal:     money.FromCents(d.FinalCents),
		Payable:        money.FromCents(d.PayableCents),
		Lines:          []contracts.OrderLineView{},
		PlacedAt:       d.PlacedAt,
	}
}
