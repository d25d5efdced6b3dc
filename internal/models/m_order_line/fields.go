package m_order_line

// Field name constants for the order_lines table, interleaved in orders.
const (
	TableName = "order_lines"

	OrderID        = "order_id"
	LineID         = "line_id"
	ProductID      = "product_id"
	Name           = "name"
	Quantity       = "quantity"
	UnitPriceCents = "unit_price_cents"
	ServicesCents  = "services_cents"
	Services       = "services"
)

// Columns lists every readable column in struct order.
func Columns() []string {
	return []string{OrderID, LineID, ProductID, Name, Quantity, UnitPriceCents, ServicesCents, Services}
}
