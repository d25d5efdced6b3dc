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
	"time"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/logging"
	"github.com/light-bringer/storefront-service/internal/pkg/metrics"
)

// purgeEvery is how often delivered and parked events are cleaned up.
const purgeEvery = time.Hour

func main() {
	if err := run(); err != nil {
		log.Fatalf("Outbox relay failed: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.SpannerDB == "" {
		return errors.New("SPANNER_DATABASE is required")
	}

	logger, err := logging.New(cfg.Env, "storefront-outbox-relay")
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	publisher, err := outbox.NewKafkaPublisher(outbox.ParseBrokers(cfg.KafkaBrokers), cfg.KafkaTopic)
	if err != nil {
		return fmt.Errorf("KAFKA_BROKERS: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close publisher", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	store := outbox.NewStore(client)
	relay := outbox.NewRelay(
		store,
		publisher,
		committer.NewCommitter(client),
		metrics.NewRelayMetrics(reg),
		logger,
		cfg.RelayBatchSize,
	)

	metricsServer := &http.Server{Addr: ":" + cfg.RelayAdminPort, Handler: metrics.Handler(reg)}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	go purgeLoop(ctx, store, clock.NewRealClock(), cfg, logger)

	logger.Info("outbox relay started",
		zap.String("topic", cfg.KafkaTopic),
		zap.Duration("interval", cfg.RelayInterval),
		zap.Int64("batch_size", cfg.RelayBatchSize))

	if err := relay.Run(ctx, cfg.RelayInterval); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("outbox relay stopped")
	return nil
}

func purgeLoop(ctx context.Context, store *outbox.Store, clk clock.Clock, cfg config.Config, logger *zap.Logger) {
	ticker := time.NewTicker(purgeEvery)
	defer ticker.Stop()

	for {
		now := clk.Now().UTC()
		deleted, err := store.Purge(ctx, now.Add(-cfg.CompletedRetain), now.Add(-cfg.FailedRetain))
		if err != nil && ctx.Err() == nil {
			logger.Warn("outbox purge failed", zap.Error(err))
		} else if deleted > 0 {
			logger.Info("outbox purged", zap.Int64("deleted", deleted))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
