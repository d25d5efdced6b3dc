package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/browse_catalog"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// maxPageSize caps the pageSize query parameter.
const maxPageSize = 96

// BrowseCatalog handles GET /catalog and GET /catalog/c/:slug. The query
// string is the shareable page state; unknown or malformed parameters are
// dropped, never rejected.
func (h *Handler) BrowseCatalog(c *gin.Context) {
	pageSize := 0
	if v, err := strconv.Atoi(c.Query("pageSize")); err == nil && v > 0 {
		pageSize = min(v, maxPageSize)
	}

	res, err := h.browse.Execute(c.Request.Context(), &browse_catalog.Request{
		CategorySlug: c.Param("slug"),
		Path:         c.Request.URL.Path,
		RawQuery:     c.Request.URL.RawQuery,
		PageSize:     pageSize,
	})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toCatalogPageResponse(res, h.engine))
}

// ListCategories handles GET /categories.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.Categories(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": nonNil(categories)})
}

// GetProduct handles GET /products/:slug.
func (h *Handler) GetProduct(c *gin.Context) {
	res, err := h.product.Execute(c.Request.Context(), &get_product.Request{Slug: c.Param("slug")})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ProductResponse{
		Product:  res.Product,
		Pricing:  res.Pricing,
		Services: nonNil(res.Services),
	})
}

// GetProductPricing handles GET /products/:slug/pricing.
func (h *Handler) GetProductPricing(c *gin.Context) {
	res, err := h.product.Execute(c.Request.Context(), &get_product.Request{Slug: c.Param("slug")})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res.Pricing)
}

// ShippingQuoteRequest asks for the shipping tiers of a subtotal.
type ShippingQuoteRequest struct {
	PostalCode string       `json:"postalCode" binding:"required"`
	Subtotal   *money.Money `json:"subtotal" binding:"required"`
}

// QuoteShipping handles POST /shipping/quote.
func (h *Handler) QuoteShipping(c *gin.Context) {
	var req ShippingQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "postalCode and a decimal subtotal are required")
		return
	}
	if req.Subtotal.IsNegative() {
		badRequest(c, "subtotal cannot be negative")
		return
	}

	shipping, err := h.engine.QuoteShipping(req.PostalCode, req.Subtotal)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, shipping)
}

// CouponRequest checks a coupon against a subtotal.
type CouponRequest struct {
	Code     string       `json:"code" binding:"required"`
	Subtotal *money.Money `json:"subtotal" binding:"required"`
}

// ValidateCoupon handles POST /coupons/validate.
func (h *Handler) ValidateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "code and a decimal subtotal are required")
		return
	}
	if req.Subtotal.IsNegative() {
		badRequest(c, "subtotal cannot be negative")
		return
	}

	discount, err := h.engine.CouponAdjustment(req.Subtotal, req.Code)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, discount)
}
