package repo

import (
	"encoding/json"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_outbox"
)

// OutboxRepo implements OutboxRepository for Spanner.
type OutboxRepo struct {
	model *m_outbox.Model
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo() contracts.OutboxRepository {
	return &OutboxRepo{model: m_outbox.NewModel()}
}

// InsertMut creates a mutation for inserting an outbox event.
func (r *OutboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	payload := spanner.NullJSON{Value: json.RawMessage(event.Payload), Valid: event.Payload != ""}

	return r.model.InsertMut(&m_outbox.Data{
		EventID:       event.EventID,
		EventType:     event.EventType,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		Payload:       payload,
		Status:        event.Status,
	})
}

// EnrichEvent converts a domain event to an outbox event with metadata.
func (r *OutboxRepo) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:       uuid.New().String(),
		EventType:     event.EventType(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		Payload:       payload,
		Status:        m_outbox.StatusPending,
	}
}
