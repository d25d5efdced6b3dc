// Package outbox relays committed outbox events to the message broker.
package outbox

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/storefront-service/internal/models/m_outbox"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

// EventSource lists events awaiting delivery.
type EventSource interface {
	ListPending(ctx context.Context, limit int64) ([]*m_outbox.Data, error)
}

// Store reads and prunes the outbox_events table.
type Store struct {
	client *spanner.Client
}

// NewStore creates a new Store.
func NewStore(client *spanner.Client) *Store {
	return &Store{client: client}
}

// PendingStatement selects the oldest pending events first.
func PendingStatement(limit int64) spanner.Statement {
	return query.From(m_outbox.TableName).
		Select(m_outbox.Columns()...).
		Where(query.Eq(m_outbox.Status, m_outbox.StatusPending)).
		OrderBy(m_outbox.CreatedAt, query.Asc).
		ThenBy(m_outbox.EventID, query.Asc).
		Limit(limit).
		Build()
}

// ListPending retrieves up to limit pending events.
func (s *Store) ListPending(ctx context.Context, limit int64) ([]*m_outbox.Data, error) {
	return s.list(ctx, PendingStatement(limit))
}

// RecentStatement selects the newest events, optionally of one status.
func RecentStatement(status string, limit int64) spanner.Statement {
	b := query.From(m_outbox.TableName).Select(m_outbox.Columns()...)
	if status != "" {
		b = b.Where(query.Eq(m_outbox.Status, status))
	}
	return b.OrderBy(m_outbox.CreatedAt, query.Desc).
		ThenBy(m_outbox.EventID, query.Asc).
		Limit(limit).
		Build()
}

// ListRecent retrieves the newest events for inspection.
func (s *Store) ListRecent(ctx context.Context, status string, limit int64) ([]*m_outbox.Data, error) {
	return s.list(ctx, RecentStatement(status, limit))
}

func (s *Store) list(ctx context.Context, stmt spanner.Statement) ([]*m_outbox.Data, error) {
	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []*m_outbox.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate events: %w", err)
		}

		var event m_outbox.Data
		if err := row.ToStruct(&event); err != nil {
			return nil, fmt.Errorf("failed to parse event: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}

const purgeFilter = `(status = 'completed' AND processed_at < @completedCutoff)
   OR (status = 'failed' AND created_at < @failedCutoff)`

func purgeParams(completedCutoff, failedCutoff time.Time) map[string]interface{} {
	return map[string]interface{}{
		"completedCutoff": completedCutoff,
		"failedCutoff":    failedCutoff,
	}
}

// CountPurgeable counts the events Purge would delete.
func (s *Store) CountPurgeable(ctx context.Context, completedCutoff, failedCutoff time.Time) (int64, error) {
	stmt := spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM outbox_events WHERE " + purgeFilter,
		Params: purgeParams(completedCutoff, failedCutoff),
	}

	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}

// Purge deletes delivered events older than completedCutoff and parked
// failures older than failedCutoff. Pending events are never touched.
func (s *Store) Purge(ctx context.Context, completedCutoff, failedCutoff time.Time) (int64, error) {
	stmt := spanner.Statement{
		SQL:    "DELETE FROM outbox_events WHERE " + purgeFilter,
		Params: purgeParams(completedCutoff, failedCutoff),
	}

	var deleted int64
	_, err := s.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		n, err := txn.Update(ctx, stmt)
		if err != nil {
			return fmt.Errorf("failed to delete events: %w", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("cleanup transaction failed: %w", err)
	}
	return deleted, nil
}
