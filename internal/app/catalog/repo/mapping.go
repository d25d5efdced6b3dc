package repo

import (
	"fmt"
	"math"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_product"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// ProductToData converts a catalog product to its row. position is the
// product's rank in relevance order.
func ProductToData(p domain.Product, position int) *m_product.Data {
	data := &m_product.Data{
		ProductID:    p.ID,
		Slug:         p.Slug,
		Name:         p.Name,
		Brand:        p.Brand,
		Condition:    string(p.Condition),
		CategorySlug: p.CategorySlug,
		PriceCents:   p.Price.Cents(),
		Stock:        int64(p.Stock),
		Rating:       math.Round(p.Rating*10) / 10,
		ReviewCount:  int64(p.ReviewCount),
		FreeShipping: p.FreeShipping,
		Tags:         p.Tags,
		Position:     int64(position),
	}
	if p.OriginalPrice != nil {
		data.OriginalPriceCents = spanner.NullInt64{Int64: p.OriginalPrice.Cents(), Valid: true}
	}
	for _, s := range p.Services {
		data.Services = append(data.Services, string(s))
	}
	return data
}

// dataToProduct converts a catalog row to the domain product.
func dataToProduct(data *m_product.Data) (domain.Product, error) {
	condition, ok := domain.ParseCondition(data.Condition)
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: unknown condition %q", data.ProductID, data.Condition)
	}

	price := money.FromCents(data.PriceCents)
	original := price
	if data.OriginalPriceCents.Valid {
		original = money.Max(money.FromCents(data.OriginalPriceCents.Int64), price)
	}

	services := make([]domain.ServiceType, 0, len(data.Services))
	for _, raw := range data.Services {
		// unknown tokens come from newer catalog feeds; skip them
		if t, ok := domain.ParseServiceType(raw); ok {
			services = append(services, t)
		}
	}

	return domain.Product{
		ID:            data.ProductID,
		Slug:          data.Slug,
		Name:          data.Name,
		Price:         price,
		OriginalPrice: original,
		Brand:         data.Brand,
		Condition:     condition,
		CategorySlug:  data.CategorySlug,
		Stock:         int(max(data.Stock, 0)),
		Rating:        data.Rating,
		ReviewCount:   int(data.ReviewCount),
		FreeShipping:  data.FreeShipping,
		Tags:          data.Tags,
		Services:      services,
	}, nil
}
