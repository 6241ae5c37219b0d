package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/spec-kit/launch-watch/internal/config"
)

// Sink receives events for delivery outside the process.
type Sink interface {
	Deliver(ctx context.Context, event Event) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic, keyed by sheet so one sheet's leads stay ordered
// within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher returns nil when no brokers are configured.
func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	if !cfg.Enabled() {
		return nil
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// Deliver encodes event as JSON and writes one message.
func (p *KafkaPublisher) Deliver(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Sheet),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
}

// Close flushes pending writes.
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
