package m_order_line

import "cloud.google.com/go/spanner"

// Data represents the database model for the order_lines table.
// Services holds the attached services as a JSON array.
type Data struct {
	OrderID        string           `spanner:"order_id"`
	LineID         string           `spanner:"line_id"`
	ProductID      string           `spanner:"product_id"`
	Name           string           `spanner:"name"`
	Quantity       int64            `spanner:"quantity"`
	UnitPriceCents int64            `spanner:"unit_price_cents"`
	ServicesCents  int64            `spanner:"services_cents"`
	Services       spanner.NullJSON `spanner:"services"`
}
