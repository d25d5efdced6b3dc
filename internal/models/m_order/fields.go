package m_order

// Field name constants for the orders table.
const (
	TableName = "orders"

	OrderID             = "order_id"
	CartID              = "cart_id"
	Status              = "status"
	PostalCode          = "postal_code"
	ShippingMethod      = "shipping_method"
	PaymentMethod       = "payment_method"
	CouponCode          = "coupon_code"
	Installments        = "installments"
	GrossCents          = "gross_cents"
	CouponDiscountCents = "coupon_discount_cents"
	ShippingCents       = "shipping_cents"
	FinalCents          = "final_cents"
	PayableCents        = "payable_cents"
	PlacedAt            = "placed_at"
	CreatedAt           = "created_at"
)

// Columns lists every readable column in struct order.
func Columns() []string {
	return []string{
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
	}
}
