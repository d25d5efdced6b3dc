package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	checkout "github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// mapDomainError converts domain errors to an HTTP status and a message
// safe to show the buyer.
func mapDomainError(err error) (int, string) {
	switch {
	// Invalid input
	case errors.Is(err, pricing.ErrInvalidPostalCode):
		return http.StatusBadRequest, "postal code must have 8 digits"
	case errors.Is(err, pricing.ErrUnknownShippingMethod):
		return http.StatusBadRequest, "unknown shipping method"
	case errors.Is(err, pricing.ErrUnknownPaymentMethod):
		return http.StatusBadRequest, "unknown payment method"
	case errors.Is(err, pricing.ErrCouponRequired):
		return http.StatusBadRequest, "coupon code cannot be empty"
	case errors.Is(err, money.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid amount"
	case errors.Is(err, cart.ErrInvalidCartID):
		return http.StatusBadRequest, "cart id cannot be empty"
	case errors.Is(err, checkout.ErrInvalidOrderID):
		return http.StatusBadRequest, "order id cannot be empty"
	case errors.Is(err, checkout.ErrInvalidInstallments):
		return http.StatusBadRequest, "installment count not available for this total"

	// Rejected by business rules
	case errors.Is(err, pricing.ErrInvalidCoupon):
		return http.StatusUnprocessableEntity, "coupon code is not valid"
	case errors.Is(err, pricing.ErrPickupUnavailable):
		return http.StatusUnprocessableEntity, "store pickup is not available"
	case errors.Is(err, cart.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "cart is empty"
	case errors.Is(err, catalog.ErrServiceNotOffered):
		return http.StatusUnprocessableEntity, "service is not offered for this product"
	case errors.Is(err, checkout.ErrAmountOverflow):
		return http.StatusUnprocessableEntity, "order total is too large"
	case errors.Is(err, cart.ErrOutOfStock):
		return http.StatusConflict, "product is out of stock"

	// Not found
	case errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, catalog.ErrCategoryNotFound):
		return http.StatusNotFound, "category not found"
	case errors.Is(err, catalog.ErrServiceNotFound):
		return http.StatusNotFound, "service not found"
	case errors.Is(err, cart.ErrLineNotFound):
		return http.StatusNotFound, "product is not in the cart"
	case errors.Is(err, checkout.ErrOrderNotFound):
		return http.StatusNotFound, "order not found"

	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// abortWithError writes the mapped error. Unmapped errors are logged.
func abortWithError(c *gin.Context, logger *zap.Logger, err error) {
	status, msg := mapDomainError(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Error(err))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
