package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	domainErrors "github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/events"
)

// projectionRetryDelay is how long the consumer waits before retrying a
// message whose projection failed.
const projectionRetryDelay = 5 * time.Second

// Handler applies one decoded event. The raw payload is passed along so
// the projection can store it verbatim.
type Handler func(ctx context.Context, event events.Event, raw []byte) error

// defaultBatchSize is used when ConsumerConfig.BatchSize is unset.
const defaultBatchSize = 100

// ConsumerConfig holds the consumer settings.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string

	// BatchSize bounds how many messages the reader prefetches into its
	// internal queue. Projection itself stays one message at a time.
	BatchSize int
}

// Consumer reads the event topic within a consumer group and feeds each
// message to the handler.
//
// Offsets are committed manually, only after the handler has persisted
// the event. A crash between persistence and commit redelivers the
// message; the handler's idempotency makes the redelivery harmless.
type Consumer struct {
	reader  *kafka.Reader
	handler Handler
	brokers []string
	log     *slog.Logger
	done    chan struct{}
}

// NewConsumer creates a Consumer. Call Start before Run.
func NewConsumer(cfg ConsumerConfig, handler Handler, log *slog.Logger) *Consumer {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:       cfg.Brokers,
		Topic:         cfg.Topic,
		GroupID:       cfg.GroupID,
		StartOffset:   kafka.FirstOffset,
		MinBytes:      1,
		MaxBytes:      10e6,
		QueueCapacity: batchSize,
	})

	return &Consumer{
		reader:  reader,
		handler: handler,
		brokers: cfg.Brokers,
		log:     log.With(slog.String("component", "kafka_consumer")),
		done:    make(chan struct{}),
	}
}

// Start verifies broker connectivity, retrying with exponential backoff.
// Permanent failure aborts service startup.
func (c *Consumer) Start(ctx context.Context) error {
	var lastErr error
	for attempt := 0; attempt < startAttempts; attempt++ {
		conn, err := kafka.DialContext(ctx, "tcp", c.brokers[0])
		if err == nil {
			_ = conn.Close()
			c.log.InfoContext(ctx, "kafka consumer started",
				slog.String("topic", c.reader.Config().Topic),
				slog.String("group_id", c.reader.Config().GroupID),
			)
			return nil
		}
		lastErr = err
		c.log.ErrorContext(ctx, "failed to connect to kafka",
			slog.Int("attempt", attempt+1),
			slog.Any("error", err),
		)

		backoff := time.Duration(1<<attempt) * time.Second
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("kafka consumer could not be started after %d attempts: %w", startAttempts, lastErr)
}

// Run consumes until ctx is cancelled. It returns nil on a clean
// shutdown and an error only if the reader breaks irrecoverably.
func (c *Consumer) Run(ctx context.Context) error {
	defer close(c.done)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.log.Info("kafka consumer stopping")
				return nil
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}
		eventsConsumed.Inc()

		if err := c.process(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				c.log.Info("kafka consumer stopping")
				return nil
			}
			return err
		}
	}
}

// process applies one message and commits its offset. A malformed or
// unknown payload is logged and committed so it cannot wedge the
// partition. A projection failure leaves the offset uncommitted and
// retries the same message after a delay.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) error {
	event, err := events.Unmarshal(msg.Value)
	if err != nil {
		reason := "malformed"
		if errors.Is(err, domainErrors.ErrUnknownEventType) {
			reason = "unknown_type"
		}
		eventsSkipped.WithLabelValues(reason).Inc()
		c.log.ErrorContext(ctx, "skipping undecodable message",
			slog.String("reason", reason),
			slog.Int64("offset", msg.Offset),
			slog.Int("partition", msg.Partition),
			slog.Any("error", err),
		)
		return c.commit(ctx, msg)
	}

	for {
		err := c.handler(ctx, event, msg.Value)
		if err == nil {
			eventsProjected.WithLabelValues(string(event.Type())).Inc()
			return c.commit(ctx, msg)
		}

		c.log.ErrorContext(ctx, "failed to project event, will retry",
			slog.String("event_type", string(event.Type())),
			slog.Int64("offset", msg.Offset),
			slog.Int("partition", msg.Partition),
			slog.Any("error", err),
		)

		select {
		case <-time.After(projectionRetryDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// commit records the offset after the message has been fully handled.
func (c *Consumer) commit(ctx context.Context, msg kafka.Message) error {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to commit offset: %w", err)
	}
	return nil
}

// Shutdown closes the reader, which unblocks Run, and waits for the
// in-flight message to finish up to the given timeout.
func (c *Consumer) Shutdown(timeout time.Duration) error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("failed to close kafka reader: %w", err)
	}

	select {
	case <-c.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("kafka consumer did not drain within %s", timeout)
	}
}
