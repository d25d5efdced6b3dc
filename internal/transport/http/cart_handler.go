package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

// AddItemRequest puts a product in the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// SetQuantityRequest changes a line's quantity; zero removes the line.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// AttachServiceRequest adds a service option to a line.
type AttachServiceRequest struct {
	ServiceID string `json:"serviceId" binding:"required"`
}

// CreateCart handles POST /carts.
func (h *Handler) CreateCart(c *gin.Context) {
	cart, err := h.carts.Create(c.Request.Context())
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	h.respondSummary(c, http.StatusCreated, cart.ID)
}

// GetCart handles GET /carts/:id.
func (h *Handler) GetCart(c *gin.Context) {
	h.respondSummary(c, http.StatusOK, c.Param("id"))
}

// ClearCart handles DELETE /carts/:id.
func (h *Handler) ClearCart(c *gin.Context) {
	h.mutate(c, func() (domain.Cart, error) {
		return h.carts.Clear(c.Request.Context(), c.Param("id"))
	})
}

// AddItem handles POST /carts/:id/items. Quantity defaults to one.
func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "productId is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		badRequest(c, "quantity must be positive")
		return
	}

	h.mutate(c, func() (domain.Cart, error) {
		return h.carts.AddItem(c.Request.Context(), c.Param("id"), req.ProductID, req.Quantity)
	})
}

// SetQuantity handles PATCH /carts/:id/items/:productId.
func (h *Handler) SetQuantity(c *gin.Context) {
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity is required")
		return
	}

	h.mutate(c, func() (domain.Cart, error) {
		return h.carts.SetQuantity(c.Request.Context(), c.Param("id"), c.Param("productId"), *req.Quantity)
	})
}

// RemoveItem handles DELETE /carts/:id/items/:productId.
func (h *Handler) RemoveItem(c *gin.Context) {
	h.mutate(c, func() (domain.Cart, error) {
		return h.carts.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("productId"))
	})
}

// AttachService handles POST /carts/:id/items/:productId/services.
func (h *Handler) AttachService(c *gin.Context) {
	var req AttachServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "serviceId is required")
		return
	}

	h.mutate(c, func() (domain.Cart, error) {
		return h.carts.AttachService(c.Request.Context(), c.Param("id"), c.Param("productId"), req.ServiceID)
	})
}

// DetachService handles DELETE /carts/:id/items/:productId/services/:serviceId.
func (h *Handler) DetachService(c *gin.Context) {
	h.mutate(c, func() (domain.Cart, error) {
		return h.carts.DetachService(c.Request.Context(), c.Param("id"), c.Param("productId"), c.Param("serviceId"))
	})
}

// mutate runs one cart change and answers with the priced cart.
func (h *Handler) mutate(c *gin.Context, fn func() (domain.Cart, error)) {
	cart, err := fn()
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	h.respondSummary(c, http.StatusOK, cart.ID)
}

func (h *Handler) respondSummary(c *gin.Context, status int, cartID string) {
	summary, err := h.carts.Summarize(c.Request.Context(), cartID)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(status, summary)
}
