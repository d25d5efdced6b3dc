package m_order

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the orders table. Amounts are cents.
type Data struct {
	OrderID             string             `spanner:"order_id"`
	CartID              string             `spanner:"cart_id"`
	Status              string             `spanner:"status"`
	PostalCode          string             `spanner:"postal_code"`
	ShippingMethod      string             `spanner:"shipping_method"`
	PaymentMethod       string             `spanner:"payment_method"`
	CouponCode          spanner.NullString `spanner:"coupon_code"`
	Installments        int64              `spanner:"installments"`
	GrossCents          int64              `spanner:"gross_cents"`
	CouponDiscountCents int64              `spanner:"coupon_discount_cents"`
	ShippingCents       int64              `spanner:"shipping_cents"`
	FinalCents          int64              `spanner:"final_cents"`
	PayableCents        int64              `spanner:"payable_cents"`
	PlacedAt            time.Time          `spanner:"placed_at"`
	CreatedAt           time.Time          `spanner:"created_at"`
}
