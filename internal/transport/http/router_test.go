package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/light-bringer/storefront-service/internal/app/cart"
	cartrepo "github.com/light-bringer/storefront-service/internal/app/cart/repo"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/browse_catalog"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_product"
	catalogrepo "github.com/light-bringer/storefront-service/internal/app/catalog/repo"
	"github.com/light-bringer/storefront-service/internal/app/catalog/search"
	"github.com/light-bringer/storefront-service/internal/app/checkout/queries/quote_checkout"
	checkoutrepo "github.com/light-bringer/storefront-service/internal/app/checkout/repo"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/metrics"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

const (
	chargerID   = "prd-0024"
	chargerSlug = "carregador-anker-65w-usb-c"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stockReader struct{}

func (stockReader) ReadRow(_ context.Context, _ string, _ spanner.Key, columns []string) (*spanner.Row, error) {
	return spanner.NewRow(columns, []interface{}{int64(10)})
}

type testApplier struct {
	err error
}

func (a *testApplier) Apply(ctx context.Context, plan *committer.CommitPlan) error {
	return a.ApplyGuarded(ctx, plan, nil)
}

func (a *testApplier) ApplyGuarded(ctx context.Context, _ *committer.CommitPlan, guard committer.Guard) error {
	if a.err != nil {
		return a.err
	}
	if guard != nil {
		_, err := guard(ctx, stockReader{})
		return err
	}
	return nil
}

type server struct {
	router  *gin.Engine
	applier *testApplier
}

func newServer(t *testing.T, withOrders bool) *server {
	t.Helper()
	seed, err := catalogrepo.LoadSeed()
	require.NoError(t, err)
	catalog := catalogrepo.NewStaticCatalog(seed)
	tree := search.NewCategoryTree(seed.Categories)
	engine, err := pricing.NewEngine(pricing.DefaultConfig(), nil)
	require.NoError(t, err)

	carts, err := cartapp.NewService(cartrepo.NewMemoryStore(), catalog, catalog, engine, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(carts.Close)

	deps := Deps{
		Browse:     browse_catalog.NewQuery(catalog, tree, zap.NewNop()),
		Product:    get_product.NewQuery(catalog, catalog, engine),
		Categories: catalog,
		Engine:     engine,
		Carts:      carts,
		Quote:      quote_checkout.NewQuery(carts, engine),
	}

	s := &server{applier: &testApplier{}}
	if withOrders {
		deps.PlaceOrder = place_order.NewInteractor(
			carts,
			engine,
			checkoutrepo.NewOrderRepo(),
			checkoutrepo.NewOutboxRepo(),
			checkoutrepo.NewStockReserver(),
			s.applier,
			clock.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)),
			zap.NewNop(),
		)
	}

	reg := prometheus.NewRegistry()
	s.router = NewRouter(NewHandler(deps), RouterOptions{
		Metrics:  metrics.NewServerMetrics(reg, "storefront-test"),
		Gatherer: reg,
		Limiter:  NewRateLimiter(nil, 1, time.Minute, nil),
	})
	return s
}

func (s *server) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type cartBody struct {
	Cart struct {
		ID    string `json:"id"`
		Lines []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
			Services  []struct {
				ServiceID string `json:"serviceId"`
			} `json:"services"`
		} `json:"lines"`
	} `json:"cart"`
	ItemCount int          `json:"itemCount"`
	Subtotal  *money.Money `json:"subtotal"`
}

func (s *server) newCart(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/carts", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[cartBody](t, w).Cart.ID
	require.NotEmpty(t, id)
	return id
}

func TestRouter_Health(t *testing.T) {
	s := newServer(t, false)

	w := s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_Catalog(t *testing.T) {
	s := newServer(t, false)

	t.Run("first page", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog?pageSize=5", nil)
		require.Equal(t, http.StatusOK, w.Code)

		page := decode[CatalogPageResponse](t, w)
		assert.Equal(t, 24, page.Total)
		assert.Len(t, page.Items, 5)
		assert.True(t, page.HasMore)
		assert.Empty(t, page.Breadcrumb)
	})

	t.Run("huge page reveals everything", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog?page=9223372036854775807", nil)
		require.Equal(t, http.StatusOK, w.Code)

		page := decode[CatalogPageResponse](t, w)
		assert.Len(t, page.Items, 24)
		assert.False(t, page.HasMore)
	})

	t.Run("category page drops unknown parameters", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/c/geladeiras?sort=priceAsc&bogus=1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		page := decode[CatalogPageResponse](t, w)
		require.NotNil(t, page.Category)
		assert.Equal(t, "geladeiras", page.Category.Slug)
		assert.Equal(t, "sort=priceAsc", page.Href)
	})

	t.Run("unknown category", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/catalog/c/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"category not found"}`, w.Body.String())
	})

	t.Run("product pricing", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/products/"+chargerSlug+"/pricing", nil)
		require.Equal(t, http.StatusOK, w.Code)

		price := decode[pricing.ProductPrice](t, w)
		assert.Equal(t, "249.90", price.Price.String())
		assert.Equal(t, "224.91", price.CashPrice.String())
		assert.Equal(t, 4, price.Installments.Count)
	})

	t.Run("unknown product", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/products/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouter_Shipping(t *testing.T) {
	s := newServer(t, false)

	t.Run("free above threshold", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/shipping/quote", map[string]any{"postalCode": "01310-100", "subtotal": 300})
		require.Equal(t, http.StatusOK, w.Code)

		shipping := decode[pricing.Shipping](t, w)
		assert.True(t, shipping.Free)
		assert.Equal(t, "01310-100", shipping.PostalCode)
		assert.True(t, shipping.Standard.Cost.IsZero())
	})

	t.Run("bad postal code", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/shipping/quote", map[string]any{"postalCode": "123", "subtotal": "10.00"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing subtotal", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/shipping/quote", map[string]any{"postalCode": "01310100"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("coupon", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/coupons/validate", map[string]any{"code": "primeira10", "subtotal": "200.00"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "20.00", decode[pricing.CouponDiscount](t, w).Discount.String())

		w = s.do(t, http.MethodPost, "/api/v1/coupons/validate", map[string]any{"code": "BOGUS", "subtotal": "200.00"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestRouter_Cart(t *testing.T) {
	s := newServer(t, false)
	id := s.newCart(t)
	items := "/api/v1/carts/" + id + "/items"

	w := s.do(t, http.MethodPost, items, map[string]any{"productId": chargerID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[cartBody](t, w)
	assert.Equal(t, 1, body.ItemCount)
	assert.Equal(t, "249.90", body.Subtotal.String())

	w = s.do(t, http.MethodPatch, items+"/"+chargerID, map[string]any{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decode[cartBody](t, w).ItemCount)

	w = s.do(t, http.MethodPatch, items+"/"+chargerID, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, items+"/prd-9999/services", map[string]any{"serviceId": "inst-001"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, items, map[string]any{"productId": "prd-9999"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, items+"/"+chargerID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[cartBody](t, w).ItemCount)

	w = s.do(t, http.MethodGet, "/api/v1/carts/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[cartBody](t, w).Cart.Lines)
}

func TestRouter_CheckoutQuote(t *testing.T) {
	s := newServer(t, false)
	id := s.newCart(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/carts/"+id+"/items",
		map[string]any{"productId": chargerID}).Code)

	w := s.do(t, http.MethodPost, "/api/v1/checkout/quote", map[string]any{
		"cartId":         id,
		"postalCode":     "01310-100",
		"shippingMethod": "express",
		"paymentMethod":  "credit",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	res := decode[quote_checkout.Result](t, w)
	assert.Equal(t, "279.80", res.Payable.String())
	assert.Equal(t, 5, res.Installments)
	assert.Equal(t, "55.96", res.InstallmentValue.String())

	w = s.do(t, http.MethodPost, "/api/v1/checkout/quote", map[string]any{
		"cartId":        id,
		"postalCode":    "01310-100",
		"paymentMethod": "cheque",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/checkout/quote", map[string]any{"cartId": id})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_Orders(t *testing.T) {
	t.Run("not mounted without a database", func(t *testing.T) {
		s := newServer(t, false)
		w := s.do(t, http.MethodPost, "/api/v1/orders", map[string]any{})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("places the order", func(t *testing.T) {
		s := newServer(t, true)
		id := s.newCart(t)
		require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/carts/"+id+"/items",
			map[string]any{"productId": chargerID, "quantity": 2}).Code)

		w := s.do(t, http.MethodPost, "/api/v1/orders", map[string]any{"cartId": id, "postalCode": "01310100"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		order := decode[OrderResponse](t, w)
		assert.Equal(t, "/api/v1/orders/"+order.OrderID, w.Header().Get("Location"))
		assert.Equal(t, "placed", order.Status)
		assert.Equal(t, "449.82", order.Payable.String())

		w = s.do(t, http.MethodGet, "/api/v1/carts/"+id, nil)
		assert.Zero(t, decode[cartBody](t, w).ItemCount)
	})

	t.Run("empty cart", func(t *testing.T) {
		s := newServer(t, true)
		id := s.newCart(t)
		w := s.do(t, http.MethodPost, "/api/v1/orders", map[string]any{"cartId": id, "postalCode": "01310100"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("storage failure is hidden", func(t *testing.T) {
		s := newServer(t, true)
		s.applier.err = errors.New("spanner unavailable")
		id := s.newCart(t)
		require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/carts/"+id+"/items",
			map[string]any{"productId": chargerID}).Code)

		w := s.do(t, http.MethodPost, "/api/v1/orders", map[string]any{"cartId": id, "postalCode": "01310100"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "spanner")
	})
}

func TestRouter_Metrics(t *testing.T) {
	s := newServer(t, false)
	s.do(t, http.MethodGet, "/api/v1/products/nope", nil)

	w := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `handler="/api/v1/products/:slug"`))
}
