package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/storefront-service/internal/app/checkout/queries/quote_checkout"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/place_order"
)

// CheckoutRequest is a checkout session. Empty methods default to
// standard shipping and pix; zero installments picks the longest plan.
type CheckoutRequest struct {
	CartID         string `json:"cartId" binding:"required"`
	PostalCode     string `json:"postalCode" binding:"required"`
	ShippingMethod string `json:"shippingMethod"`
	PaymentMethod  string `json:"paymentMethod"`
	CouponCode     string `json:"couponCode"`
	Installments   int    `json:"installments"`
}

// QuoteCheckout handles POST /checkout/quote.
func (h *Handler) QuoteCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "cartId and postalCode are required")
		return
	}

	res, err := h.quote.Execute(c.Request.Context(), &quote_checkout.Request{
		CartID:         req.CartID,
		PostalCode:     req.PostalCode,
		ShippingMethod: req.ShippingMethod,
		PaymentMethod:  req.PaymentMethod,
		CouponCode:     req.CouponCode,
		Installments:   req.Installments,
	})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PlaceOrder handles POST /orders.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "cartId and postalCode are required")
		return
	}

	order, err := h.placeOrder.Execute(c.Request.Context(), &place_order.Request{
		CartID:         req.CartID,
		PostalCode:     req.PostalCode,
		ShippingMethod: req.ShippingMethod,
		PaymentMethod:  req.PaymentMethod,
		CouponCode:     req.CouponCode,
		Installments:   req.Installments,
	})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	c.Header("Location", "/api/v1/orders/"+order.ID)
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// GetOrder handles GET /orders/:id.
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.getOrder.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
