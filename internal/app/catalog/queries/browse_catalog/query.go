package browse_catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/controller"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/search"
)

// Request identifies one catalog page.
type Request struct {
	// CategorySlug scopes the page; empty browses the whole catalog.
	CategorySlug string
	// Path and RawQuery are the page location, e.g. "/c/geladeiras" and "brands=LG".
	Path     string
	RawQuery string
	PageSize int
}

// Result is a rendered catalog page.
type Result struct {
	Category   *domain.Category
	Breadcrumb []domain.Category
	Snapshot   controller.Snapshot
}

// Query handles the browse catalog query use case.
type Query struct {
	readModel contracts.ReadModel
	tree      *search.CategoryTree
	logger    *zap.Logger
}

// NewQuery creates a new browse catalog query.
func NewQuery(readModel contracts.ReadModel, tree *search.CategoryTree, logger *zap.Logger) *Query {
	return &Query{
		readModel: readModel,
		tree:      tree,
		logger:    logger,
	}
}

// Execute loads the scoped products and renders the page the location describes.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	result := &Result{}
	var scope []string

	if req.CategorySlug != "" {
		category, err := q.tree.Lookup(req.CategorySlug)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, req.CategorySlug)
		}
		result.Category = &category
		result.Breadcrumb = q.tree.Path(req.CategorySlug)
		scope = []string{req.CategorySlug}
	}

	filter := &contracts.ListFilter{}
	for _, slug := range scope {
		filter.CategorySlugs = append(filter.CategorySlugs, q.tree.Resolve(slug)...)
	}
	products, err := q.readModel.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	loc := &fixedLocation{href: req.Path}
	if req.RawQuery != "" {
		loc.href += "?" + req.RawQuery
	}

	page := controller.New(loc, controller.Options{
		Products: products,
		Resolver: q.tree,
		Scope:    scope,
		PageSize: req.PageSize,
		Logger:   q.logger,
	})
	result.Snapshot = page.State()
	return result, nil
}

// fixedLocation is the location of a single request; nothing navigates it.
type fixedLocation struct {
	href string
}

func (l *fixedLocation) Read() string           { return l.href }
func (l *fixedLocation) Replace(location string) { l.href = location }
