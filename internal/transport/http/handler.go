// Package http is the storefront's JSON API.
package http

import (
	"go.uber.org/zap"

	cartapp "github.com/light-bringer/storefront-service/internal/app/cart"
	catalogcontracts "github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/browse_catalog"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/storefront-service/internal/app/checkout/queries/get_order"
	"github.com/light-bringer/storefront-service/internal/app/checkout/queries/quote_checkout"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
)

// Deps are the use cases the API exposes. PlaceOrder and GetOrder are
// optional; their routes are not mounted without them.
type Deps struct {
	Browse     *browse_catalog.Query
	Product    *get_product.Query
	Categories catalogcontracts.CategoryReadModel
	Engine     *pricing.Engine
	Carts      *cartapp.Service
	Quote      *quote_checkout.Query
	PlaceOrder *place_order.Interactor
	GetOrder   *get_order.Query
	Logger     *zap.Logger
}

// Handler implements the HTTP endpoints.
type Handler struct {
	browse     *browse_catalog.Query
	product    *get_product.Query
	categories catalogcontracts.CategoryReadModel
	engine     *pricing.Engine
	carts      *cartapp.Service
	quote      *quote_checkout.Query
	placeOrder *place_order.Interactor
	getOrder   *get_order.Query
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		browse:     d.Browse,
		product:    d.Product,
		categories: d.Categories,
		engine:     d.Engine,
		carts:      d.Carts,
		quote:      d.Quote,
		placeOrder: d.PlaceOrder,
		getOrder:   d.GetOrder,
		logger:     logger,
	}
}
