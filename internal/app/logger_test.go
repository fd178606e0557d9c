package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromEnv(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, levelFromEnv("DEBUG"))
	assert.Equal(t, slog.LevelWarn, levelFromEnv("warn"))
	assert.Equal(t, slog.LevelError, levelFromEnv("error"))
	assert.Equal(t, slog.LevelInfo, levelFromEnv(""))
	assert.Equal(t, slog.LevelInfo, levelFromEnv("verbose"))
}

func TestLoggerHandler_Handle(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(&loggerHandler{handler: slog.NewJSONHandler(&buf, nil)})
	ctx := WithRequestID(context.Background(), "req-42")

	logger.InfoContext(ctx, "Fetched feed", "bytes", 128)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "req-42", record["request_id"])
	assert.Equal(t, "Fetched feed", record["msg"])

	ts, err := time.Parse(time.RFC3339Nano, record["time"].(string))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ts.Location())
	assert.Zero(t, ts.Nanosecond())
}
