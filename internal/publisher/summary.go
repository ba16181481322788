package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"

	"example.com/workout/internal/domain"
	"example.com/workout/internal/events"
)

var publishFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "workout",
	Subsystem: "publisher",
	Name:      "publish_failures_total",
	Help:      "Number of summary events that could not be written to Kafka.",
}, []string{"topic"})

// ErrEncode marks events that cannot be serialised. Retrying will not help.
var ErrEncode = errors.New("encode event")

func init() {
	prometheus.MustRegister(publishFailures)
}

// Writer is the subset of KafkaProducer used by SummaryPublisher.
type Writer interface {
	WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error
}

// SummaryPublisher emits TrainingSummarized events for computed outcomes.
type SummaryPublisher struct {
	writer Writer
	topic  string
	now    func() time.Time
	newID  func() string
}

// NewSummaryPublisher constructs a SummaryPublisher writing to topic.
func NewSummaryPublisher(writer Writer, topic string) *SummaryPublisher {
	return &SummaryPublisher{
		writer: writer,
		topic:  topic,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Publish writes the outcome as a training.summarized event and returns the event.
func (p *SummaryPublisher) Publish(ctx context.Context, tenantID string, out domain.Outcome) (events.TrainingSummarized, error) {
	evt := events.TrainingSummarized{
		EventID:       p.newID(),
		TenantID:      tenantID,
		WorkoutType:   out.Package.WorkoutType,
		TrainingType:  out.Summary.Label,
		DurationHours: out.Summary.DurationHours,
		DistanceKm:    out.Summary.DistanceKm,
		MeanSpeedKmh:  out.Summary.MeanSpeedKmh,
		CaloriesKcal:  out.Summary.CaloriesKcal,
		Message:       out.Message,
		OccurredAt:    p.now(),
	}

	msg, err := NewSummaryMessage(evt)
	if err != nil {
		return evt, err
	}
	if err := p.writer.WriteMessages(ctx, p.topic, msg); err != nil {
		publishFailures.WithLabelValues(p.topic).Inc()
		return evt, fmt.Errorf("publish %s: %w", events.EventTypeTrainingSummarized, err)
	}
	return evt, nil
}

// NewSummaryMessage encodes the event as a Kafka record keyed by its event ID.
func NewSummaryMessage(evt events.TrainingSummarized) (kafka.Message, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w %s: %v", ErrEncode, events.EventTypeTrainingSummarized, err)
	}
	headers := []kafka.Header{
		{Key: "event_type", Value: []byte(events.EventTypeTrainingSummarized)},
		{Key: "training_type", Value: []byte(evt.TrainingType)},
	}
	if evt.TenantID != "" {
		headers = append(headers, kafka.Header{Key: "tenant_id", Value: []byte(evt.TenantID)})
	}
	return kafka.Message{
		Key:     []byte(evt.EventID),
		Value:   payload,
		Headers: headers,
		Time:    evt.OccurredAt,
	}, nil
}
