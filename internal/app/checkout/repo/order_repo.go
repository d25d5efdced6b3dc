package repo

import (
	"encoding/json"
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_order"
	"github.com/light-bringer/storefront-service/internal/models/m_order_line"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// OrderRepo implements OrderRepository for Spanner.
type OrderRepo struct {
	orders *m_order.Model
	lines  *m_order_line.Model
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo() contracts.OrderRepository {
	return &OrderRepo{
		orders: m_order.NewModel(),
		lines:  m_order_line.NewModel(),
	}
}

// InsertMut creates the mutation for the order row.
func (r *OrderRepo) InsertMut(order *domain.Order) (*spanner.Mutation, error) {
	data, err := orderToData(order)
	if err != nil {
		return nil, err
	}
	return r.orders.InsertMut(data), nil
}

// LineMuts creates one mutation per order line. Attached services are kept
// as a JSON array next to their summed price.
func (r *OrderRepo) LineMuts(order *domain.Order) ([]*spanner.Mutation, error) {
	muts := make([]*spanner.Mutation, 0, len(order.Lines))
	for _, l := range order.Lines {
		unit, err := toCents(l.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("line %s: %w", l.ProductID, err)
		}

		servicesTotal := money.Zero()
		for _, s := range l.Services {
			servicesTotal = servicesTotal.Add(s.Price)
		}
		servicesCents, err := toCents(servicesTotal)
		if err != nil {
			return nil, fmt.Errorf("line %s: %w", l.ProductID, err)
		}

		var services spanner.NullJSON
		if len(l.Services) > 0 {
			raw, err := json.Marshal(l.Services)
			if err != nil {
				return nil, fmt.Errorf("failed to encode services of %s: %w", l.ProductID, err)
			}
			services = spanner.NullJSON{Value: json.RawMessage(raw), Valid: true}
		}

		muts = append(muts, r.lines.InsertMut(&m_order_line.Data{
			OrderID:        order.ID,
			LineID:         l.ID,
			ProductID:      l.ProductID,
			Name:           l.Name,
			Quantity:       int64(l.Quantity),
			UnitPriceCents: unit,
			ServicesCents:  servicesCents,
			Services:       services,
		}))
	}
	return muts, nil
}

func orderToData(o *domain.Order) (*m_order.Data, error) {
	amounts := []*money.Money{
		o.Quote.GrossTotal,
		o.Quote.CouponDiscountTotal,
		o.Quote.ShippingCost,
		o.Quote.FinalTotal,
		o.Payable,
	}
	cents := make([]int64, len(amounts))
	for i, m := range amounts {
		c, err := toCents(m)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", o.ID, err)
		}
		cents[i] = c
	}

	return &m_order.Data{
		OrderID:             o.ID,
		CartID:              o.CartID,
		Status:              o.Status,
		PostalCode:          o.PostalCode,
		ShippingMethod:      string(o.ShippingMethod),
		PaymentMethod:       string(o.PaymentMethod),
		CouponCode:          spanner.NullString{StringVal: o.CouponCode, Valid: o.CouponCode != ""},
		Installments:        int64(o.Installments),
		GrossCents:          cents[0],
		CouponDiscountCents: cents[1],
		ShippingCents:       cents[2],
		FinalCents:          cents[3],
		PayableCents:        cents[4],
		PlacedAt:            o.PlacedAt,
	}, nil
}

var maxCents = new(big.Int).SetInt64(1<<63 - 1)

// toCents converts an amount to int64 cents, rejecting values that overflow.
func toCents(m *money.Money) (int64, error) {
	if m == nil {
		return 0, nil
	}
	scaled := new(big.Rat).Mul(m.RoundCents().Rat(), big.NewRat(100, 1))
	n := new(big.Int).Abs(scaled.Num())
	if n.Cmp(maxCents) > 0 {
		return 0, domain.ErrAmountOverflow
	}
	return scaled.Num().Int64(), nil
}
