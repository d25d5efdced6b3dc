//go:build integration

package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/testutil"
)

func TestReadModel_Spanner(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	seed, err := LoadSeed()
	require.NoError(t, err)

	for i, p := range seed.Products {
		testutil.InsertProducts(t, client, ProductToData(p, i))
	}
	readModel := NewReadModel(client)

	t.Run("list keeps relevance order", func(t *testing.T) {
		all, err := readModel.ListProducts(ctx, nil)
		require.NoError(t, err)
		require.Len(t, all, len(seed.Products))
		for i := range all {
			assert.Equal(t, seed.Products[i].ID, all[i].ID)
		}
	})

	t.Run("list scoped", func(t *testing.T) {
		list, err := readModel.ListProducts(ctx, &contracts.ListFilter{CategorySlugs: []string{"tvs"}})
		require.NoError(t, err)
		for _, p := range list {
			assert.Equal(t, "tvs", p.CategorySlug)
		}
	})

	t.Run("get by id and slug", func(t *testing.T) {
		want := seed.Products[0]
		got, err := readModel.GetProductByID(ctx, want.ID)
		require.NoError(t, err)
		assert.True(t, want.Price.Equals(got.Price))

		got, err = readModel.GetProductBySlug(ctx, want.Slug)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)

		_, err = readModel.GetProductByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		_, err = readModel.GetProductBySlug(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}
