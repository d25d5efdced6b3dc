package contracts

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// ListFilter narrows what a read model loads. Faceting happens in memory
// afterwards; only the category scope is pushed down to storage.
type ListFilter struct {
	// CategorySlugs are already resolved (department plus subcategories).
	// Empty means the whole catalog.
	CategorySlugs []string
}

// ReadModel defines the interface for catalog queries.
// Products come back in relevance order.
type ReadModel interface {
	ListProducts(ctx context.Context, filter *ListFilter) ([]domain.Product, error)

	// GetProductByID returns domain.ErrProductNotFound for unknown IDs.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// GetProductBySlug returns domain.ErrProductNotFound for unknown slugs.
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// CategoryReadModel exposes the navigation tree.
type CategoryReadModel interface {
	Categories(ctx context.Context) ([]domain.Category, error)
}

// ServiceReadModel looks up the add-on services sold with products.
type ServiceReadModel interface {
	// GetServiceOption returns domain.ErrServiceNotFound for unknown IDs.
	GetServiceOption(ctx context.Context, serviceID string) (*domain.ServiceOption, error)

	// ServicesFor lists the options sold for a category, in catalog order.
	ServicesFor(ctx context.Context, categorySlug string) ([]domain.ServiceOption, error)
}
