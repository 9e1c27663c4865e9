package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "info", Format: "json", Output: &buf})

	log.Info("wallet funded", slog.String("wallet_id", "w-1"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "wallet funded", record["msg"])
	assert.Equal(t, "w-1", record["wallet_id"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "info", Format: "text", Output: &buf})

	log.Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "warn", Format: "json", Output: &buf})

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestContextHandler_AddsCorrelationData(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "info", Format: "json", Output: &buf})

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithCorrelationID(ctx, "corr-456")

	log.InfoContext(ctx, "processing")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "req-123", record["request_id"])
	assert.Equal(t, "corr-456", record["correlation_id"])
}

func TestContextHandler_NoContextData(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "info", Format: "json", Output: &buf})

	log.InfoContext(context.Background(), "bare")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	_, hasRequestID := record["request_id"]
	assert.False(t, hasRequestID)
}

func TestContextHelpers(t *testing.T) {
	ctx := WithAllIDs(context.Background(), "c-1", "r-1", "u-1")

	assert.Equal(t, "c-1", GetCorrelationID(ctx))
	assert.Equal(t, "r-1", GetRequestID(ctx))
	assert.Equal(t, "u-1", GetUserID(ctx))

	empty := context.Background()
	assert.Equal(t, "", GetCorrelationID(empty))
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	log := New(nil)
	assert.NotNil(t, log)
}
