// Package consumer reads sensor packages from Kafka and hands them to a Handler.
package consumer

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrUnprocessable marks messages that can never succeed. The processor commits
// them instead of leaving them for redelivery.
var ErrUnprocessable = errors.New("unprocessable message")

// Reader exposes the minimal kafka.Reader interface needed by the processor.
type Reader interface {
	FetchMessage(context.Context) (kafka.Message, error)
	CommitMessages(context.Context, ...kafka.Message) error
	Close() error
}

// Handler receives decoded messages from Kafka.
type Handler interface {
	Handle(context.Context, Message) error
}

// Message is the decoded representation of a Kafka record carrying a sensor package.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Key       string
	TenantID  string
	Payload   []byte
}

// Option configures optional behaviour for the Processor.
type Option func(*Processor)

// WithLogger overrides the logger used to report errors.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithRetryBackoff bounds the exponential backoff between handler retries.
func WithRetryBackoff(initial, maxInterval time.Duration) Option {
	return func(p *Processor) {
		if initial > 0 {
			p.retryInitial = initial
		}
		if maxInterval >= p.retryInitial {
			p.retryMax = maxInterval
		}
	}
}

// Processor pulls messages from Kafka, decodes them, and dispatches to a Handler.
// A message is only committed once it has been handled or rejected, so the
// committed offset never passes a message that failed transiently.
type Processor struct {
	reader       Reader
	handler      Handler
	logger       *zap.Logger
	retryInitial time.Duration
	retryMax     time.Duration
}

// NewProcessor constructs a Processor with the provided reader and handler.
func NewProcessor(reader Reader, handler Handler, opts ...Option) *Processor {
	p := &Processor{
		reader:       reader,
		handler:      handler,
		logger:       zap.NewNop(),
		retryInitial: 200 * time.Millisecond,
		retryMax:     30 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run starts a blocking loop that processes Kafka messages until the context is cancelled.
func (p *Processor) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, err := p.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			p.logger.Error("fetch error", zap.Error(err))
			continue
		}

		log := p.logger.With(zap.String("topic", msg.Topic), zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))

		event, decodeErr := decodeMessage(msg)
		if decodeErr != nil {
			log.Warn("decode error", zap.Error(decodeErr))
			recordDecodeError(msg.Topic)
			// Commit malformed messages to avoid poison-pill loops.
			p.commit(ctx, log, msg)
			continue
		}

		if handleErr := p.handle(ctx, log, event); handleErr != nil {
			if errors.Is(handleErr, ErrUnprocessable) {
				log.Warn("message rejected", zap.String("tenant_id", event.TenantID), zap.Error(handleErr))
				recordRejected(event)
				p.commit(ctx, log, msg)
				continue
			}
			// Only cancellation ends the retry loop; leave the message for redelivery.
			log.Warn("handler retry abandoned", zap.String("tenant_id", event.TenantID), zap.Error(handleErr))
			return handleErr
		}

		if p.commit(ctx, log, msg) {
			recordProcessed(event)
		}
	}
}

// handle retries transient handler failures in place until the handler
// succeeds, rejects the message, or ctx is done.
func (p *Processor) handle(ctx context.Context, log *zap.Logger, event Message) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.retryInitial
	b.MaxInterval = p.retryMax
	b.MaxElapsedTime = 0

	op := func() error {
		err := p.handler.Handle(ctx, event)
		if errors.Is(err, ErrUnprocessable) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.Error("handler error", zap.String("tenant_id", event.TenantID), zap.Duration("retry_in", wait), zap.Error(err))
		recordHandlerError(event)
	}
	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
}

func (p *Processor) commit(ctx context.Context, log *zap.Logger, msg kafka.Message) bool {
	if err := p.reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit error", zap.Error(err))
		return false
	}
	return true
}

func decodeMessage(msg kafka.Message) (Message, error) {
	if len(msg.Value) == 0 {
		return Message{}, errors.New("empty payload")
	}
	tenantID, _ := headerValue(msg, "tenant_id")

	return Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
		Key:       string(msg.Key),
		TenantID:  string(tenantID),
		Payload:   append([]byte(nil), msg.Value...),
	}, nil
}

func headerValue(msg kafka.Message, key string) ([]byte, bool) {
	for _, header := range msg.Headers {
		if header.Key == key {
			return header.Value, true
		}
	}
	return nil, false
}
