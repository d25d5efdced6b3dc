package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the catalog_products table.
// Prices are stored as integer cents; Position is the relevance order.
type Data struct {
	ProductID          string            `spanner:"product_id"`
	Slug               string            `spanner:"slug"`
	Name               string            `spanner:"name"`
	Brand              string            `spanner:"brand"`
	Condition          string            `spanner:"condition"`
	CategorySlug       string            `spanner:"category_slug"`
	PriceCents         int64             `spanner:"price_cents"`
	OriginalPriceCents spanner.NullInt64 `spanner:"original_price_cents"`
	Stock              int64             `spanner:"stock"`
	Rating             float64           `spanner:"rating"`
	ReviewCount        int64             `spanner:"review_count"`
	FreeShipping       bool              `spanner:"free_shipping"`
	Tags               []string          `spanner:"tags"`
	Services           []string          `spanner:"services"`
	Position           int64             `spanner:"position"`
	CreatedAt          time.Time         `spanner:"created_at"`
	UpdatedAt          time.Time         `spanner:"updated_at"`
}
