package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_product"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{
		client: client,
	}
}

// ListStatement builds the catalog listing query. Relevance order is the
// imported position; product_id breaks ties.
func ListStatement(filter *contracts.ListFilter) spanner.Statement {
	b := query.From(m_product.TableName).Select(m_product.Columns()...)
	if filter != nil && len(filter.CategorySlugs) > 0 {
		b = b.Where(query.In(m_product.CategorySlug, filter.CategorySlugs))
	}
	return b.OrderBy(m_product.Position, query.Asc).
		ThenBy(m_product.ProductID, query.Asc).
		Build()
}

// ListProducts retrieves every product in the given categories.
func (rm *ReadModelImpl) ListProducts(ctx context.Context, filter *contracts.ListFilter) ([]domain.Product, error) {
	iter := rm.client.Single().Query(ctx, ListStatement(filter))
	defer iter.Stop()

	var products []domain.Product
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}

		product, err := dataToProduct(&data)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// GetProductByID retrieves a product by ID.
func (rm *ReadModelImpl) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	row, err := rm.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	product, err := dataToProduct(&data)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductBySlug retrieves a product by its URL slug.
func (rm *ReadModelImpl) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	stmt := query.From(m_product.TableName).
		Select(m_product.Columns()...).
		Where(query.Eq(m_product.Slug, slug)).
		Limit(1).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	product, err := dataToProduct(&data)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
