// Package events publishes export events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes every event as one JSON message keyed by query ID.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev entity.ExportEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(ev.QueryID),
		Value:   payload,
		Time:    ev.OccurredAt,
		Headers: []kafka.Header{{Key: "event_type", Value: []byte(ev.Type)}},
	})
}

func (p *KafkaPublisher) Close() error { return p.writer.Close() }

// Nop drops events; used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, entity.ExportEvent) error { return nil }
func (Nop) Close() error                                      { return nil }
