package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	require.Equal(t, "req-1", RequestIDFromContext(ctx))
	require.Empty(t, RequestIDFromContext(context.Background()))
}

func TestZapLoggerAttachesRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &zapLogger{sugar: zap.New(core).Sugar()}

	l.Infof(WithRequestID(context.Background(), "abc"), "stored %s", "push")
	l.Warn(context.Background(), "no id")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "stored push", entries[0].Message)
	require.Equal(t, "abc", entries[0].ContextMap()["request_id"])
	require.NotContains(t, entries[1].ContextMap(), "request_id")
}

func TestInitFallsBackOnBadLevel(t *testing.T) {
	l := Init(ZapConfig{Level: "loud", Mode: "debug", Encoding: EncodingConsole})
	require.NotNil(t, l)

	l = Init(ZapConfig{Level: "warn", Mode: ModeProduction, Encoding: EncodingJSON})
	require.NotNil(t, l)
}
