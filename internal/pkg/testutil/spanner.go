// Package testutil holds helpers for tests that run against the Spanner emulator.
// Those tests carry the "integration" build tag.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/models/m_order"
	"github.com/light-bringer/storefront-service/internal/models/m_order_line"
	"github.com/light-bringer/storefront-service/internal/models/m_outbox"
	"github.com/light-bringer/storefront-service/internal/models/m_product"
)

// SetupSpannerTest creates a test Spanner client and returns a cleanup function.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	ctx := context.Background()
	spannerDB := GetTestSpannerDB()

	client, err := spanner.NewClient(ctx, spannerDB)
	require.NoError(t, err, "failed to create Spanner client")

	// Clean database before test
	CleanDatabase(t, client)

	cleanup := func() {
		CleanDatabase(t, client)
		client.Close()
	}

	return client, cleanup
}

// GetTestSpannerDB returns the test Spanner database string.
func GetTestSpannerDB() string {
	if db := os.Getenv("SPANNER_TEST_DATABASE"); db != "" {
		return db
	}
	return "projects/test-project/instances/test-instance/databases/storefront-test"
}

// CleanDatabase truncates all tables for test isolation.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	ctx := context.Background()

	// order_lines is interleaved in orders, children go first
	mutations := []*spanner.Mutation{
		spanner.Delete(m_outbox.TableName, spanner.AllKeys()),
		spanner.Delete(m_order_line.TableName, spanner.AllKeys()),
		spanner.Delete(m_order.TableName, spanner.AllKeys()),
		spanner.Delete(m_product.TableName, spanner.AllKeys()),
	}

	_, err := client.Apply(ctx, mutations)
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	ctx := context.Background()
	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	err = row.Columns(&count)
	require.NoError(t, err, "failed to parse count")

	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}

// InsertProducts writes catalog rows directly.
func InsertProducts(t *testing.T, client *spanner.Client, rows ...*m_product.Data) {
	t.Helper()

	model := m_product.NewModel()
	muts := make([]*spanner.Mutation, 0, len(rows))
	for _, r := range rows {
		muts = append(muts, model.UpsertMut(r))
	}

	_, err := client.Apply(context.Background(), muts)
	require.NoError(t, err, "failed to insert products")
}
