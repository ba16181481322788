package publisher

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	batches [][]kafka.Message
	err     error
	closed  bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.batches = append(w.batches, msgs)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaProducerRoutesToTopic(t *testing.T) {
	writer := &recordingWriter{}
	producer := &KafkaProducer{writer: writer}

	msgs := []kafka.Message{{Key: []byte("a")}, {Key: []byte("b")}}
	require.NoError(t, producer.WriteMessages(context.Background(), "training_summaries", msgs...))

	require.Len(t, writer.batches, 1)
	for _, msg := range writer.batches[0] {
		require.Equal(t, "training_summaries", msg.Topic)
	}
	require.Empty(t, msgs[0].Topic)
	require.Empty(t, msgs[1].Topic)

	require.NoError(t, producer.Close())
	require.True(t, writer.closed)
}

func TestKafkaProducerRequiresTopic(t *testing.T) {
	writer := &recordingWriter{}
	producer := &KafkaProducer{writer: writer}

	err := producer.WriteMessages(context.Background(), "", kafka.Message{Key: []byte("a")})
	require.ErrorIs(t, err, ErrNoTopic)
	require.Empty(t, writer.batches)

	require.NoError(t, producer.WriteMessages(context.Background(), "t"))
	require.Empty(t, writer.batches)
}

func TestKafkaProducerWrapsWriteErrors(t *testing.T) {
	brokerDown := errors.New("broker down")
	producer := &KafkaProducer{writer: &recordingWriter{err: brokerDown}}

	err := producer.WriteMessages(context.Background(), "t", kafka.Message{})
	require.ErrorIs(t, err, brokerDown)
	require.ErrorContains(t, err, "write 1 message(s) to t")
}
