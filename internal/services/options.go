// Package services wires the application's dependencies from configuration.
package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cartapp "github.com/light-bringer/storefront-service/internal/app/cart"
	cartcontracts "github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	cartrepo "github.com/light-bringer/storefront-service/internal/app/cart/repo"
	catalogcontracts "github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/browse_catalog"
	"github.com/light-bringer/storefront-service/internal/app/catalog/queries/get_product"
	catalogrepo "github.com/light-bringer/storefront-service/internal/app/catalog/repo"
	"github.com/light-bringer/storefront-service/internal/app/catalog/search"
	"github.com/light-bringer/storefront-service/internal/app/checkout/queries/get_order"
	"github.com/light-bringer/storefront-service/internal/app/checkout/queries/quote_checkout"
	checkoutrepo "github.com/light-bringer/storefront-service/internal/app/checkout/repo"
	"github.com/light-bringer/storefront-service/internal/app/checkout/usecases/place_order"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/metrics"
	httptransport "github.com/light-bringer/storefront-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisClient   *redis.Client
	Registry      *prometheus.Registry

	Engine  *pricing.Engine
	Carts   *cartapp.Service
	Handler *httptransport.Handler
	Limiter *httptransport.RateLimiter
	Metrics *metrics.ServerMetrics
}

// NewServiceOptions creates and wires up all application dependencies.
// Spanner and Redis are both optional: without Spanner the catalog is the
// embedded seed and orders are disabled, without Redis carts stay in memory.
func NewServiceOptions(ctx context.Context, cfg config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	opts := &ServiceOptions{Registry: prometheus.NewRegistry()}
	opts.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	opts.Metrics = metrics.NewServerMetrics(opts.Registry, "storefront")

	// 1. Pricing rules
	pricingCfg, err := cfg.Pricing()
	if err != nil {
		return nil, err
	}
	opts.Engine, err = pricing.NewEngine(pricingCfg, nil)
	if err != nil {
		return nil, err
	}

	// 2. Catalog: categories and services always come from the seed
	seed, err := catalogrepo.LoadSeed()
	if err != nil {
		return nil, err
	}
	static := catalogrepo.NewStaticCatalog(seed)
	tree := search.NewCategoryTree(seed.Categories)

	var products catalogcontracts.ReadModel = static
	if cfg.SpannerDB != "" {
		opts.SpannerClient, err = spanner.NewClient(ctx, cfg.SpannerDB)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		products = catalogrepo.NewReadModel(opts.SpannerClient)
	}

	// 3. Cart storage
	var kv cartcontracts.KVStore = cartrepo.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			opts.Close()
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opts.RedisClient = redis.NewClient(redisOpts)
		if err := opts.RedisClient.Ping(ctx).Err(); err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		kv = cartrepo.NewRedisStore(opts.RedisClient, cfg.RedisPrefix, cfg.CartTTL, logger)
	}
	var cartOpts []cartapp.Option
	if cfg.CartMaxHosted > 0 {
		cartOpts = append(cartOpts, cartapp.WithMaxHosted(cfg.CartMaxHosted))
	}
	opts.Carts, err = cartapp.NewService(kv, products, static, opts.Engine, logger, cartOpts...)
	if err != nil {
		opts.Close()
		return nil, fmt.Errorf("failed to create cart service: %w", err)
	}

	// 4. Use cases
	deps := httptransport.Deps{
		Browse:     browse_catalog.NewQuery(products, tree, logger),
		Product:    get_product.NewQuery(products, static, opts.Engine),
		Categories: static,
		Engine:     opts.Engine,
		Carts:      opts.Carts,
		Quote:      quote_checkout.NewQuery(opts.Carts, opts.Engine),
		Logger:     logger,
	}
	if opts.SpannerClient != nil {
		deps.PlaceOrder = place_order.NewInteractor(
			opts.Carts,
			opts.Engine,
			checkoutrepo.NewOrderRepo(),
			checkoutrepo.NewOutboxRepo(),
			checkoutrepo.NewStockReserver(),
			committer.NewCommitter(opts.SpannerClient),
			clock.NewRealClock(),
			logger,
		)
		deps.GetOrder = get_order.NewQuery(checkoutrepo.NewOrderReadModel(opts.SpannerClient))
	}

	// 5. HTTP handler
	opts.Handler = httptransport.NewHandler(deps)
	opts.Limiter = httptransport.NewRateLimiter(opts.RedisClient, cfg.OrderRateLimit, cfg.OrderRateWindow, logger)

	return opts, nil
}

// Ready reports whether the configured backends answer.
func (s *ServiceOptions) Ready(ctx context.Context) error {
	if s.RedisClient != nil {
		if err := s.RedisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.Carts != nil {
		s.Carts.Close()
	}
	if s.RedisClient != nil {
		_ = s.RedisClient.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
