package domain

import (
	"time"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// StatusPlaced is the status of a freshly committed order.
const StatusPlaced = "placed"

// Order is a placed checkout. It is immutable once built.
type Order struct {
	ID             string
	CartID         string
	Status         string
	PostalCode     string
	ShippingMethod pricing.ShippingMethod
	PaymentMethod  pricing.PaymentMethod
	CouponCode     string
	Installments   int
	Quote          pricing.Quote
	// Payable is what the buyer is charged: the cash figure for pix,
	// the final total otherwise.
	Payable  *money.Money
	Lines    []cart.Line
	PlacedAt time.Time
}

// NewOrder builds an order from a normalized session and its quote.
func NewOrder(id string, s Session, q pricing.Quote, placedAt time.Time) (*Order, error) {
	s, err := s.Normalize()
	if err != nil {
		return nil, err
	}
	installments, err := s.InstallmentCount(q)
	if err != nil {
		return nil, err
	}

	return &Order{
		ID:             id,
		CartID:         s.Cart.ID,
		Status:         StatusPlaced,
		PostalCode:     s.PostalCode,
		ShippingMethod: s.ShippingMethod,
		PaymentMethod:  s.PaymentMethod,
		CouponCode:     q.CouponCode,
		Installments:   installments,
		Quote:          q,
		Payable:        q.Payable(s.PaymentMethod),
		Lines:          s.Cart.Lines,
		PlacedAt:       placedAt,
	}, nil
}

// InstallmentValue is the amount of each installment of the chosen plan.
func (o *Order) InstallmentValue() *money.Money {
	if o.Installments <= 1 {
		return o.Payable
	}
	v, _ := o.Payable.DivideByInt(int64(o.Installments))
	return v.RoundCents()
}

// PlacedEvent is the event published once the order is committed.
func (o *Order) PlacedEvent() *OrderPlacedEvent {
	items := make([]OrderItem, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, OrderItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return &OrderPlacedEvent{
		OrderID:       o.ID,
		CartID:        o.CartID,
		PaymentMethod: string(o.PaymentMethod),
		Installments:  o.Installments,
		Payable:       o.Payable,
		Items:         items,
		PlacedAt:      o.PlacedAt,
	}
}
