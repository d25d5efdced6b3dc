package outbox

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrDisabled is returned when no broker is configured.
var ErrDisabled = errors.New("kafka disabled")

// Message is one event on its way to the broker.
type Message struct {
	Key     string
	Value   []byte
	Headers map[string]string
}

// Publisher delivers messages to the broker.
type Publisher interface {
	Publish(ctx context.Context, msgs ...Message) error
	Close() error
}

// ParseBrokers splits a comma-separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// KafkaPublisher writes to one topic. Messages with the same key land on
// the same partition, so events of one order stay in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for topic.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, ErrDisabled
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}, nil
}

// Publish writes msgs in one batch.
func (p *KafkaPublisher) Publish(ctx context.Context, msgs ...Message) error {
	out := make([]kafka.Message, 0, len(msgs))
	now := time.Now().UTC()
	for _, m := range msgs {
		headers := make([]kafka.Header, 0, len(m.Headers))
		for k, v := range m.Headers {
			headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
		}
		out = append(out, kafka.Message{Key: []byte(m.Key), Value: m.Value, Headers: headers, Time: now})
	}
	return p.writer.WriteMessages(ctx, out...)
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
