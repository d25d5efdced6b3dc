package repo

import (
	"context"
	"slices"

	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// StaticCatalog serves a Seed from memory. It implements every catalog read
// model and backs the service when no Spanner database is configured.
type StaticCatalog struct {
	seed     *Seed
	byID     map[string]int
	bySlug   map[string]int
	services map[string]int
}

var (
	_ contracts.ReadModel         = (*StaticCatalog)(nil)
	_ contracts.CategoryReadModel = (*StaticCatalog)(nil)
	_ contracts.ServiceReadModel  = (*StaticCatalog)(nil)
)

// NewStaticCatalog indexes the seed.
func NewStaticCatalog(seed *Seed) *StaticCatalog {
	c := &StaticCatalog{
		seed:     seed,
		byID:     make(map[string]int, len(seed.Products)),
		bySlug:   make(map[string]int, len(seed.Products)),
		services: make(map[string]int, len(seed.Services)),
	}
	for i, p := range seed.Products {
		c.byID[p.ID] = i
		c.bySlug[p.Slug] = i
	}
	for i, s := range seed.Services {
		c.services[s.ID] = i
	}
	return c
}

// ListProducts returns the products in the given categories, in seed order.
func (c *StaticCatalog) ListProducts(_ context.Context, filter *contracts.ListFilter) ([]domain.Product, error) {
	if filter == nil || len(filter.CategorySlugs) == 0 {
		return slices.Clone(c.seed.Products), nil
	}
	out := make([]domain.Product, 0, len(c.seed.Products))
	for _, p := range c.seed.Products {
		if slices.Contains(filter.CategorySlugs, p.CategorySlug) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetProductByID retrieves a product by ID.
func (c *StaticCatalog) GetProductByID(_ context.Context, productID string) (*domain.Product, error) {
	i, ok := c.byID[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p := c.seed.Products[i]
	return &p, nil
}

// GetProductBySlug retrieves a product by slug.
func (c *StaticCatalog) GetProductBySlug(_ context.Context, slug string) (*domain.Product, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p := c.seed.Products[i]
	return &p, nil
}

// Categories returns the navigation tree.
func (c *StaticCatalog) Categories(_ context.Context) ([]domain.Category, error) {
	return slices.Clone(c.seed.Categories), nil
}

// GetServiceOption retrieves an add-on service by ID.
func (c *StaticCatalog) GetServiceOption(_ context.Context, serviceID string) (*domain.ServiceOption, error) {
	i, ok := c.services[serviceID]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	s := c.seed.Services[i]
	return &s, nil
}

// ServicesFor lists the add-on services sold for a category.
func (c *StaticCatalog) ServicesFor(_ context.Context, categorySlug string) ([]domain.ServiceOption, error) {
	var out []domain.ServiceOption
	for _, s := range c.seed.Services {
		if s.AvailableFor(categorySlug) {
			out = append(out, s)
		}
	}
	return out, nil
}
