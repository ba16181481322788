package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"example.com/workout/internal/domain"
	"example.com/workout/internal/events"
	"example.com/workout/internal/publisher"
	"example.com/workout/internal/training"
)

// Publisher emits computed summaries downstream.
type Publisher interface {
	Publish(ctx context.Context, tenantID string, out domain.Outcome) (events.TrainingSummarized, error)
}

// SummaryHandler turns sensor packages into published training summaries.
type SummaryHandler struct {
	service   *domain.Service
	publisher Publisher
	logger    *zap.Logger
}

// NewSummaryHandler wires the calculator service to a publisher.
func NewSummaryHandler(service *domain.Service, publisher Publisher, logger *zap.Logger) *SummaryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryHandler{service: service, publisher: publisher, logger: logger}
}

// Handle decodes the package, computes its summary and publishes it.
func (h *SummaryHandler) Handle(ctx context.Context, msg Message) error {
	var pkg domain.Package
	if err := json.Unmarshal(msg.Payload, &pkg); err != nil {
		return fmt.Errorf("%w: decode package: %v", ErrUnprocessable, err)
	}

	out, err := h.service.Summarize(ctx, pkg)
	if err != nil {
		if training.IsRejection(err) {
			return fmt.Errorf("%w: %w", ErrUnprocessable, err)
		}
		return err
	}

	evt, err := h.publisher.Publish(ctx, msg.TenantID, out)
	if err != nil {
		if errors.Is(err, publisher.ErrEncode) {
			return fmt.Errorf("%w: %w", ErrUnprocessable, err)
		}
		return err
	}
	h.logger.Info("training summarized",
		zap.String("event_id", evt.EventID),
		zap.String("tenant_id", msg.TenantID),
		zap.String("training_type", evt.TrainingType),
		zap.Float64("calories_kcal", evt.CaloriesKcal),
	)
	return nil
}
