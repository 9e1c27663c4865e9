// Package kafka implements the event log transport on Apache Kafka.
//
// The topic is partitioned and keyed by wallet id: all events of one
// wallet land in one partition and are observed in producer order.
// Transfer events are published twice, once per side's key, with an
// identical payload; consumer idempotency by transaction_id collapses
// the duplicate.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Haleralex/walletflow/internal/application/ports"
	domainErrors "github.com/Haleralex/walletflow/internal/domain/errors"
	"github.com/Haleralex/walletflow/internal/domain/events"
)

// startAttempts is how many times a broker connection is attempted at
// startup before the service aborts, with 2^attempt seconds between
// attempts.
const startAttempts = 5

// Compile-time check
var _ ports.EventPublisher = (*Publisher)(nil)

// PublisherConfig holds the producer settings.
type PublisherConfig struct {
	Brokers []string
	Topic   string
}

// Publisher implements ports.EventPublisher on a kafka-go Writer.
//
// RequiredAcks is RequireAll: a publish succeeds only once every
// in-sync replica has acknowledged the write.
type Publisher struct {
	writer *kafka.Writer
	topic  string
	log    *slog.Logger
}

// NewPublisher creates a Publisher. Call Start before first use.
func NewPublisher(cfg PublisherConfig, log *slog.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Publisher{
		writer: writer,
		topic:  cfg.Topic,
		log:    log.With(slog.String("component", "kafka_publisher")),
	}
}

// Start verifies broker connectivity, retrying with exponential backoff.
// Permanent failure aborts service startup.
func (p *Publisher) Start(ctx context.Context) error {
	var lastErr error
	for attempt := 0; attempt < startAttempts; attempt++ {
		conn, err := kafka.DialContext(ctx, "tcp", p.writer.Addr.String())
		if err == nil {
			_ = conn.Close()
			p.log.InfoContext(ctx, "kafka producer started",
				slog.String("topic", p.topic),
			)
			return nil
		}
		lastErr = err
		p.log.ErrorContext(ctx, "failed to connect to kafka",
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

	return fmt.Errorf("kafka producer could not be started after %d attempts: %w", startAttempts, lastErr)
}

// Publish serializes the event once and writes one message per
// partition key the event reports. Both messages of a transfer are
// written in a single batch.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	payload, err := events.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize %s event: %w", event.Type(), err)
	}

	keys := event.PartitionKeys()
	messages := make([]kafka.Message, len(keys))
	for i, key := range keys {
		messages[i] = kafka.Message{
			Key:   []byte(key),
			Value: payload,
		}
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		publishErrors.Inc()
		return &domainErrors.PublicationError{Topic: p.topic, Err: err}
	}

	eventsPublished.WithLabelValues(string(event.Type())).Add(float64(len(messages)))
	p.log.DebugContext(ctx, "event published",
		slog.String("event_type", string(event.Type())),
		slog.Int("messages", len(messages)),
	)
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
