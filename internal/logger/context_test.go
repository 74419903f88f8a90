package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := GetLogger()
	log = slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { log = prev })
	return buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestFromContext_Fields(t *testing.T) {
	buf := captureLogs(t)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "user-1")
	ctx = WithSessionID(ctx, "cs_test_1")

	CtxInfo(ctx, "Payment applied", "kind", "subscription")

	entry := decodeLine(t, buf)
	assert.Equal(t, "Payment applied", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Equal(t, "cs_test_1", entry["session_id"])
	assert.Equal(t, "subscription", entry["kind"])
}

func TestFromContext_Empty(t *testing.T) {
	buf := captureLogs(t)

	CtxWarn(context.Background(), "no fields")

	entry := decodeLine(t, buf)
	assert.NotContains(t, entry, "request_id")
	assert.NotContains(t, entry, "session_id")
	assert.Empty(t, GetSessionID(context.Background()))
}

func TestCtxWithError(t *testing.T) {
	t.Run("error text", func(t *testing.T) {
		buf := captureLogs(t)
		CtxWithError(WithSessionID(context.Background(), "cs_1"), "lookup failed", errors.New("timeout"))

		entry := decodeLine(t, buf)
		assert.Equal(t, "timeout", entry["error"])
		assert.Equal(t, "cs_1", entry["session_id"])
	})

	t.Run("nil error", func(t *testing.T) {
		buf := captureLogs(t)
		assert.NotPanics(t, func() {
			CtxWithError(context.Background(), "nothing", nil)
		})
		assert.Equal(t, "<nil>", decodeLine(t, buf)["error"])
	})
}
