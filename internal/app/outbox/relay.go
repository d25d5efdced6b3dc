package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/models/m_outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/metrics"
)

// DefaultBatchSize is how many events one Drain call picks up.
const DefaultBatchSize = 100

// Envelope is the message value written to the broker.
type Envelope struct {
	EventID       string           `json:"eventId"`
	EventType     string           `json:"eventType"`
	AggregateType string           `json:"aggregateType"`
	AggregateID   string           `json:"aggregateId"`
	Payload       spanner.NullJSON `json:"payload"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// Relay moves pending outbox events to the broker and records the outcome
// of each attempt back in the outbox. Delivery is at least once: an event
// published just before a crash is published again on the next run.
type Relay struct {
	source    EventSource
	publisher Publisher
	committer committer.Applier
	model     *m_outbox.Model
	metrics   *metrics.RelayMetrics
	logger    *zap.Logger
	batchSize int64
}

// NewRelay creates a Relay. A nil metrics disables counting.
func NewRelay(
	source EventSource,
	publisher Publisher,
	committer committer.Applier,
	metrics *metrics.RelayMetrics,
	logger *zap.Logger,
	batchSize int64,
) *Relay {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Relay{
		source:    source,
		publisher: publisher,
		committer: committer,
		model:     m_outbox.NewModel(),
		metrics:   metrics,
		logger:    logger,
		batchSize: batchSize,
	}
}

// Result summarizes one Drain call.
type Result struct {
	Published int
	Failed    int
}

// Drain publishes one batch. Each event is published on its own so a
// poison event does not hold back the rest; its retry count goes up and
// after MaxRetries attempts it is parked as failed.
func (r *Relay) Drain(ctx context.Context) (Result, error) {
	events, err := r.source.ListPending(ctx, r.batchSize)
	if err != nil {
		return Result{}, err
	}

	var res Result
	plan := committer.NewPlan()
	for _, ev := range events {
		if err := r.publish(ctx, ev); err != nil {
			retries := ev.RetryCount + 1
			plan.Add(r.model.MarkRetryMut(ev.EventID, retries, err.Error()))
			res.Failed++
			if r.metrics != nil {
				r.metrics.Failed.WithLabelValues(ev.EventType).Inc()
			}
			r.logger.Warn("outbox publish failed",
				zap.String("event_id", ev.EventID),
				zap.String("event_type", ev.EventType),
				zap.Int64("retry_count", retries),
				zap.Error(err))
			continue
		}
		plan.Add(r.model.MarkCompletedMut(ev.EventID))
		res.Published++
		if r.metrics != nil {
			r.metrics.Published.WithLabelValues(ev.EventType).Inc()
		}
	}

	if err := r.committer.Apply(ctx, plan); err != nil {
		return res, fmt.Errorf("failed to record outbox progress: %w", err)
	}
	return res, nil
}

// Run drains on every tick until ctx is cancelled. A full batch is drained
// again immediately.
func (r *Relay) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := r.Drain(ctx)
		switch {
		case err != nil:
			r.logger.Error("outbox drain failed", zap.Error(err))
		case res.Published+res.Failed > 0:
			r.logger.Info("outbox drained",
				zap.Int("published", res.Published),
				zap.Int("failed", res.Failed))
		}
		if err == nil && int64(res.Published+res.Failed) == r.batchSize {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *Relay) publish(ctx context.Context, ev *m_outbox.Data) error {
	value, err := json.Marshal(Envelope{
		EventID:       ev.EventID,
		EventType:     ev.EventType,
		AggregateType: ev.AggregateType,
		AggregateID:   ev.AggregateID,
		Payload:       ev.Payload,
		CreatedAt:     ev.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return r.publisher.Publish(ctx, Message{
		Key:   ev.AggregateID,
		Value: value,
		Headers: map[string]string{
			"event_id":   ev.EventID,
			"event_type": ev.EventType,
		},
	})
}
