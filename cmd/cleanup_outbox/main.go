package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/outbox"
	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/pkg/logging"
)

// Options for a one-off outbox cleanup. The relay purges on its own; this
// is for backfills and for checking what a retention change would remove.
type Options struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	DryRun                 bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := Options{}
	flag.StringVar(&opts.SpannerDB, "database", cfg.SpannerDB, "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&opts.CompletedRetentionDays, "completed-retention", days(cfg.CompletedRetain), "Retention days for completed events")
	flag.IntVar(&opts.FailedRetentionDays, "failed-retention", days(cfg.FailedRetain), "Retention days for failed events")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	logger, err := logging.New(cfg.Env, "storefront-cleanup-outbox")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if opts.SpannerDB == "" {
		logger.Fatal("-database flag or SPANNER_DATABASE is required")
	}

	if err := cleanupOutbox(context.Background(), opts, time.Now().UTC(), logger); err != nil {
		logger.Fatal("cleanup failed", zap.Error(err))
	}
}

func cleanupOutbox(ctx context.Context, opts Options, now time.Time, logger *zap.Logger) error {
	client, err := spanner.NewClient(ctx, opts.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	completedCutoff, failedCutoff := cutoffs(now, opts)
	logger.Info("starting outbox cleanup",
		zap.Time("completed_cutoff", completedCutoff),
		zap.Time("failed_cutoff", failedCutoff),
		zap.Bool("dry_run", opts.DryRun))

	store := outbox.NewStore(client)
	if opts.DryRun {
		n, err := store.CountPurgeable(ctx, completedCutoff, failedCutoff)
		if err != nil {
			return err
		}
		logger.Info("dry run: events that would be deleted", zap.Int64("count", n))
		return nil
	}

	n, err := store.Purge(ctx, completedCutoff, failedCutoff)
	if err != nil {
		return err
	}
	logger.Info("outbox cleanup completed", zap.Int64("deleted", n))
	return nil
}

func cutoffs(now time.Time, opts Options) (completed, failed time.Time) {
	return now.AddDate(0, 0, -opts.CompletedRetentionDays), now.AddDate(0, 0, -opts.FailedRetentionDays)
}

func days(d time.Duration) int {
	return int(d / (24 * time.Hour))
}
