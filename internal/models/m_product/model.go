package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the catalog_products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a mutation that inserts or replaces a catalog product.
// The catalog is fed by an external source, so imports are idempotent.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			ProductID,
			Slug,
			Name,
			Brand,
			Condition,
			CategorySlug,
			PriceCents,
			OriginalPriceCents,
			Stock,
			Rating,
			ReviewCount,
			FreeShipping,
			Tags,
			Services,
			Position,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.ProductID,
			data.Slug,
			data.Name,
			data.Brand,
			data.Condition,
			data.CategorySlug,
			data.PriceCents,
			data.OriginalPriceCents,
			data.Stock,
			data.Rating,
			data.ReviewCount,
			data.FreeShipping,
			data.Tags,
			data.Services,
			data.Position,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateStockMut sets the available stock of one product.
func (m *Model) UpdateStockMut(productID string, stock int64) *spanner.Mutation {
	return spanner.Update(
		TableName,
		[]string{ProductID, Stock, UpdatedAt},
		[]interface{}{productID, stock, spanner.CommitTimestamp},
	)
}
