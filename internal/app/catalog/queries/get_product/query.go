package get_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
)

// Request contains the product slug to retrieve.
type Request struct {
	Slug string
}

// Result is a product page: the product, its card pricing and the add-on
// services it can be sold with.
type Result struct {
	Product  *domain.Product
	Pricing  pricing.ProductPrice
	Services []domain.ServiceOption
}

// Query handles the get product query use case.
type Query struct {
	readModel contracts.ReadModel
	services  contracts.ServiceReadModel
	engine    *pricing.Engine
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ReadModel, services contracts.ServiceReadModel, engine *pricing.Engine) *Query {
	return &Query{
		readModel: readModel,
		services:  services,
		engine:    engine,
	}
}

// Execute retrieves a product by slug and prices it.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	product, err := q.readModel.GetProductBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}

	options, err := q.services.ServicesFor(ctx, product.CategorySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	offered := make([]domain.ServiceOption, 0, len(options))
	for _, opt := range options {
		if product.OffersService(opt.Type) {
			offered = append(offered, opt)
		}
	}

	return &Result{
		Product:  product,
		Pricing:  q.engine.ProductPricing(product.Price, product.OriginalPrice),
		Services: offered,
	}, nil
}
