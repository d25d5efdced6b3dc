package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/pkg/metrics"
)

// RouterOptions are the cross-cutting pieces around the handlers. Every
// field is optional.
type RouterOptions struct {
	Metrics     *metrics.ServerMetrics
	Gatherer    prometheus.Gatherer
	Limiter     *RateLimiter
	CORSOrigins []string
	// Ready backs /healthz; nil always reports healthy.
	Ready func(ctx context.Context) error
}

// NewRouter mounts the API under /api/v1.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Location", "Retry-After"},
			MaxAge:        12 * time.Hour,
		}))
	}
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}

	r.GET("/healthz", func(c *gin.Context) {
		if opts.Ready != nil {
			if err := opts.Ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(opts.Gatherer)))
	}

	api := r.Group("/api/v1")

	api.GET("/catalog", h.BrowseCatalog)
	api.GET("/catalog/c/:slug", h.BrowseCatalog)
	api.GET("/categories", h.ListCategories)
	api.GET("/products/:slug", h.GetProduct)
	api.GET("/products/:slug/pricing", h.GetProductPricing)
	api.POST("/shipping/quote", h.QuoteShipping)
	api.POST("/coupons/validate", h.ValidateCoupon)

	carts := api.Group("/carts")
	carts.POST("", h.CreateCart)
	carts.GET("/:id", h.GetCart)
	carts.DELETE("/:id", h.ClearCart)
	carts.POST("/:id/items", h.AddItem)
	carts.PATCH("/:id/items/:productId", h.SetQuantity)
	carts.DELETE("/:id/items/:productId", h.RemoveItem)
	carts.POST("/:id/items/:productId/services", h.AttachService)
	carts.DELETE("/:id/items/:productId/services/:serviceId", h.DetachService)

	api.POST("/checkout/quote", h.QuoteCheckout)

	if h.placeOrder != nil {
		api.POST("/orders", opts.Limiter.Middleware(), h.PlaceOrder)
	}
	if h.getOrder != nil {
		api.GET("/orders/:id", h.GetOrder)
	}

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request", fields...)
			return
		}
		logger.Debug("request", fields...)
	}
}
