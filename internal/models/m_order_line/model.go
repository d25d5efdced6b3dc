package m_order_line

import "cloud.google.com/go/spanner"

// Model provides a facade for type-safe operations on the order_lines table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting an order line.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns(),
		[]interface{}{
			data.OrderID,
			data.LineID,
			data.ProductID,
			data.Name,
			data.Quantity,
			data.UnitPriceCents,
			data.ServicesCents,
			data.Services,
		},
	)
}
