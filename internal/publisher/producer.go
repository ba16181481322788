// Package publisher writes workout events to Kafka.
package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// ErrNoTopic is returned when a write names no destination topic.
var ErrNoTopic = errors.New("kafka write without topic")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer routes messages to their topic through one shared writer.
type KafkaProducer struct {
	writer messageWriter
}

// NewKafkaProducer creates a KafkaProducer for brokers. Messages are keyed by
// event ID, so the hash balancer keeps redeliveries on one partition.
func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Compression:            kafka.Snappy,
		AllowAutoTopicCreation: true,
	}}
}

// WriteMessages sends msgs to topic. The caller's messages are not modified.
func (p *KafkaProducer) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	if topic == "" {
		return ErrNoTopic
	}
	if len(msgs) == 0 {
		return nil
	}
	routed := make([]kafka.Message, len(msgs))
	for i, msg := range msgs {
		msg.Topic = topic
		routed[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, routed...); err != nil {
		return fmt.Errorf("write %d message(s) to %s: %w", len(routed), topic, err)
	}
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
