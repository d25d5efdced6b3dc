package m_product

// Field name constants for the catalog_products table.
const (
	TableName = "catalog_products"

	ProductID          = "product_id"
	Slug               = "slug"
	Name               = "name"
	Brand              = "brand"
	Condition          = "condition"
	CategorySlug       = "category_slug"
	PriceCents         = "price_cents"
	OriginalPriceCents = "original_price_cents"
	Stock              = "stock"
	Rating             = "rating"
	ReviewCount        = "review_count"
	FreeShipping       = "free_shipping"
	Tags               = "tags"
	Services           = "services"
	Position           = "position"
	CreatedAt          = "created_at"
	UpdatedAt          = "updated_at"
)

// Columns lists every readable column in struct order.
func Columns() []string {
	return []string{
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
	}
}
