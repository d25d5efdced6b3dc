package m_order

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the orders table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting an order.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			OrderID,
			CartID,
			Status,
			PostalCode,
			ShippingMethod,
			PaymentMethod,
			CouponCode,
			Installments,
			GrossCents,
			CouponDiscountCents,
			ShippingCents,
			FinalCents,
			PayableCents,
			PlacedAt,
			CreatedAt,
		},
		[]interface{}{
			data.OrderID,
			data.CartID,
			data.Status,
			data.PostalCode,
			data.ShippingMethod,
			data.PaymentMethod,
			data.CouponCode,
			data.Installments,
			data.GrossCents,
			data.CouponDiscountCents,
			data.ShippingCents,
			data.FinalCents,
			data.PayableCents,
			data.PlacedAt,
			spanner.CommitTimestamp,
		},
	)
}
