package kafka

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestConsumer(t *testing.T, batchSize int) *Consumer {
	t.Helper()

	c := NewConsumer(ConsumerConfig{
		Brokers:   []string{"localhost:9092"},
		Topic:     "wallet_events",
		GroupID:   "history-service-group",
		BatchSize: batchSize,
	}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = c.reader.Close() })
	return c
}

func TestNewConsumer_BatchSizeSizesReaderQueue(t *testing.T) {
	c := newTestConsumer(t, 64)
	assert.Equal(t, 64, c.reader.Config().QueueCapacity)
}

func TestNewConsumer_BatchSizeDefaults(t *testing.T) {
	t.Run("Zero", func(t *testing.T) {
		c := newTestConsumer(t, 0)
		assert.Equal(t, defaultBatchSize, c.reader.Config().QueueCapacity)
	})

	t.Run("Negative", func(t *testing.T) {
		c := newTestConsumer(t, -1)
		assert.Equal(t, defaultBatchSize, c.reader.Config().QueueCapacity)
	})
}
