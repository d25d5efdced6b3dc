package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/pkg/logging"
	"github.com/light-bringer/storefront-service/internal/services"
	httptransport "github.com/light-bringer/storefront-service/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration from .env and environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Env, "storefront-server")
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting storefront service",
		zap.String("http_port", cfg.HTTPPort),
		zap.Bool("spanner", cfg.SpannerDB != ""),
		zap.Bool("redis", cfg.RedisURL != ""))

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	router := httptransport.NewRouter(serviceOpts.Handler, httptransport.RouterOptions{
		Metrics:     serviceOpts.Metrics,
		Gatherer:    serviceOpts.Registry,
		Limiter:     serviceOpts.Limiter,
		CORSOrigins: cfg.CORSOrigins,
		Ready:       serviceOpts.Ready,
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	// 3. Start HTTP server in background
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 4. Graceful shutdown handling
	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	}

	logger.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	return nil
}
