package m_outbox

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the outbox_events table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting an outbox event.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			EventID,
			EventType,
			AggregateType,
			AggregateID,
			Payload,
			Status,
			CreatedAt,
			ProcessedAt,
			RetryCount,
			ErrorMessage,
		},
		[]interface{}{
			data.EventID,
			data.EventType,
			data.AggregateType,
			data.AggregateID,
			data.Payload,
			data.Status,
			spanner.CommitTimestamp,
			data.ProcessedAt,
			data.RetryCount,
			data.ErrorMessage,
		},
	)
}

// MarkCompletedMut records a successful publish.
func (m *Model) MarkCompletedMut(eventID string) *spanner.Mutation {
	return spanner.Update(
		TableName,
		[]string{EventID, Status, ProcessedAt, ErrorMessage},
		[]interface{}{eventID, StatusCompleted, spanner.CommitTimestamp, spanner.NullString{}},
	)
}

// MarkRetryMut records a failed publish attempt. Once retries are exhausted
// the event is parked as failed.
func (m *Model) MarkRetryMut(eventID string, retryCount int64, errMsg string) *spanner.Mutation {
	status := StatusPending
	if retryCount >= MaxRetries {
		status = StatusFailed
	}
	return spanner.Update(
		TableName,
		[]string{EventID, Status, RetryCount, ErrorMessage},
		[]interface{}{eventID, status, retryCount, spanner.NullString{StringVal: errMsg, Valid: errMsg != ""}},
	)
}
