package consumer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"example.com/workout/internal/domain"
	"example.com/workout/internal/events"
	"example.com/workout/internal/publisher"
	"example.com/workout/internal/training"
)

type stubPublisher struct {
	tenant   string
	outcomes []domain.Outcome
	err      error
}

func (p *stubPublisher) Publish(_ context.Context, tenantID string, out domain.Outcome) (events.TrainingSummarized, error) {
	if p.err != nil {
		return events.TrainingSummarized{}, p.err
	}
	p.tenant = tenantID
	p.outcomes = append(p.outcomes, out)
	return events.TrainingSummarized{EventID: "evt-1", TrainingType: out.Summary.Label, CaloriesKcal: out.Summary.CaloriesKcal}, nil
}

func TestSummaryHandlerPublishes(t *testing.T) {
	pub := &stubPublisher{}
	handler := NewSummaryHandler(domain.NewService(), pub, zaptest.NewLogger(t))

	err := handler.Handle(context.Background(), Message{
		TenantID: "tenant-1",
		Payload:  []byte(`{"workout_type":"SWM","data":[720,1,80,25,40]}`),
	})
	require.NoError(t, err)
	require.Equal(t, "tenant-1", pub.tenant)
	require.Len(t, pub.outcomes, 1)
	require.Equal(t, training.Swimming, pub.outcomes[0].Summary.Kind)
	require.InDelta(t, 336.0, pub.outcomes[0].Summary.CaloriesKcal, 1e-9)
}

func TestSummaryHandlerRejectsBadReadings(t *testing.T) {
	pub := &stubPublisher{}
	handler := NewSummaryHandler(domain.NewService(), pub, nil)

	for _, payload := range []string{
		`not json`,
		`{"workout_type":"XYZ","data":[1,2,3]}`,
		`{"workout_type":"WLK","data":[9000,1,75]}`,
		`{"workout_type":"RUN","data":[15000,-1,75]}`,
		`{"workout_type":"SWM","data":[720,1,1e308,25,40]}`,
		`{"workout_type":"RUN","data":[15000,1e-320,75]}`,
	} {
		err := handler.Handle(context.Background(), Message{Payload: []byte(payload)})
		require.ErrorIs(t, err, ErrUnprocessable, payload)
	}
	require.Empty(t, pub.outcomes)
}

func TestSummaryHandlerPropagatesPublishFailure(t *testing.T) {
	pub := &stubPublisher{err: errors.New("broker down")}
	handler := NewSummaryHandler(domain.NewService(), pub, nil)

	err := handler.Handle(context.Background(), Message{Payload: []byte(`{"workout_type":"RUN","data":[15000,1,75]}`)})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnprocessable)
}

func TestSummaryHandlerTreatsEncodeFailureAsUnprocessable(t *testing.T) {
	pub := &stubPublisher{err: fmt.Errorf("%w training.summarized: json: unsupported value: +Inf", publisher.ErrEncode)}
	handler := NewSummaryHandler(domain.NewService(), pub, nil)

	err := handler.Handle(context.Background(), Message{Payload: []byte(`{"workout_type":"RUN","data":[15000,1,75]}`)})
	require.ErrorIs(t, err, ErrUnprocessable)
	require.ErrorIs(t, err, publisher.ErrEncode)
}
