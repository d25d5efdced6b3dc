package http

import (
	"time"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/browse_catalog"
	"github.com/light-bringer/storefront-service/internal/app/catalog/search"
	checkout "github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// ProductCard is a product as a result list shows it.
type ProductCard struct {
	domain.Product
	Pricing pricing.ProductPrice `json:"pricing"`
}

// FiltersResponse is the active facet selection.
type FiltersResponse struct {
	PriceMin     *money.Money         `json:"priceMin"`
	PriceMax     *money.Money         `json:"priceMax"`
	Brands       []string             `json:"brands"`
	Conditions   []domain.Condition   `json:"conditions"`
	ServiceTypes []domain.ServiceType `json:"services"`
	InStock      bool                 `json:"inStock"`
	FreeShipping bool                 `json:"freeShipping"`
	Rating       int                  `json:"rating"`
	ActiveCount  int                  `json:"activeCount"`
}

// ViewResponse is the decoded page state.
type ViewResponse struct {
	Mode    domain.Mode     `json:"mode"`
	Sort    domain.SortKey  `json:"sort"`
	Layout  domain.Layout   `json:"layout"`
	Page    int             `json:"page"`
	Filters FiltersResponse `json:"filters"`
}

// CatalogPageResponse is a rendered catalog page.
type CatalogPageResponse struct {
	Category   *domain.Category  `json:"category,omitempty"`
	Breadcrumb []domain.Category `json:"breadcrumb"`
	View       ViewResponse      `json:"view"`
	// Href is the canonical location of this page.
	Href     string         `json:"href"`
	Items    []ProductCard  `json:"items"`
	Total    int            `json:"total"`
	PageSize int            `json:"pageSize"`
	HasMore  bool           `json:"hasMore"`
	Facets   search.Summary `json:"facets"`
}

// ProductResponse is a product page.
type ProductResponse struct {
	Product  *domain.Product        `json:"product"`
	Pricing  pricing.ProductPrice   `json:"pricing"`
	Services []domain.ServiceOption `json:"services"`
}

func toViewResponse(v domain.ViewState) ViewResponse {
	f := v.Filters
	return ViewResponse{
		Mode:   v.Mode,
		Sort:   v.Sort,
		Layout: v.Layout,
		Page:   v.Page,
		Filters: FiltersResponse{
			PriceMin:     f.PriceMin(),
			PriceMax:     f.PriceMax(),
			Brands:       nonNil(f.Brands()),
			Conditions:   nonNil(f.Conditions()),
			ServiceTypes: nonNil(f.ServiceTypes()),
			InStock:      f.InStock(),
			FreeShipping: f.FreeShipping(),
			Rating:       f.Rating(),
			ActiveCount:  f.ActiveFacetCount(),
		},
	}
}

func toCatalogPageResponse(res *browse_catalog.Result, engine *pricing.Engine) CatalogPageResponse {
	snap := res.Snapshot
	items := make([]ProductCard, 0, len(snap.Results.Items))
	for _, p := range snap.Results.Items {
		items = append(items, ProductCard{Product: p, Pricing: engine.ProductPricing(p.Price, p.OriginalPrice)})
	}

	return CatalogPageResponse{
		Category:   res.Category,
		Breadcrumb: nonNil(res.Breadcrumb),
		View:       toViewResponse(snap.View),
		Href:       snap.Href,
		Items:      items,
		Total:      snap.Results.Total,
		PageSize:   snap.Results.PageSize,
		HasMore:    snap.Results.HasMore,
		Facets:     snap.Facets,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// OrderResponse is a freshly placed order.
type OrderResponse struct {
	OrderID          string                 `json:"orderId"`
	CartID           string                 `json:"cartId"`
	Status           string                 `json:"status"`
	PostalCode       string                 `json:"postalCode"`
	ShippingMethod   pricing.ShippingMethod `json:"shippingMethod"`
	PaymentMethod    pricing.PaymentMethod  `json:"paymentMethod"`
	Installments     int                    `json:"installments"`
	InstallmentValue *money.Money           `json:"installmentValue"`
	Payable          *money.Money           `json:"payable"`
	Quote            pricing.Quote          `json:"quote"`
	Lines            []cart.Line            `json:"lines"`
	PlacedAt         time.Time              `json:"placedAt"`
}

func toOrderResponse(o *checkout.Order) OrderResponse {
	return OrderResponse{
		OrderID:          o.ID,
		CartID:           o.CartID,
		Status:           o.Status,
		PostalCode:       o.PostalCode,
		ShippingMethod:   o.ShippingMethod,
		PaymentMethod:    o.PaymentMethod,
		Installments:     o.Installments,
		InstallmentValue: o.InstallmentValue(),
		Payable:          o.Payable,
		Quote:            o.Quote,
		Lines:            o.Lines,
		PlacedAt:         o.PlacedAt,
	}
}
