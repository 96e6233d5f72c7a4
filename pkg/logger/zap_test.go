package logger_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/order_lookup/pkg/ctxmeta"
	"github.com/Gunvolt24/order_lookup/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_AttachesRequestMeta(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))

	ctx := ctxmeta.WithRequestID(context.Background(), "req-42")
	ctx = ctxmeta.WithProductID(ctx, 2142)

	log.Infof(ctx, "cache hit key=%s", "order_count_2142_01/01/2000_01/01/2100")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "cache hit key=order_count_2142_01/01/2000_01/01/2100", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "req-42", fields["request_id"])
	require.Equal(t, "2142", fields["product_id"])
}

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))
	ctx := context.Background()

	log.Debugf(ctx, "d")
	log.Infof(ctx, "i")
	log.Warnf(ctx, "w")
	log.Errorf(ctx, "e")

	entries := logs.All()
	require.Len(t, entries, 4)
	require.Equal(t, zapcore.DebugLevel, entries[0].Level)
	require.Equal(t, zapcore.InfoLevel, entries[1].Level)
	require.Equal(t, zapcore.WarnLevel, entries[2].Level)
	require.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	for _, e := range entries {
		require.Empty(t, e.Context, "no ctx meta expected for background ctx")
	}
}

func TestNewZapLogger(t *testing.T) {
	for _, isProd := range []bool{false, true} {
		log, cleanup, err := logger.NewZapLogger(isProd)
		require.NoError(t, err)
		require.NotNil(t, log.Base())
		require.NotNil(t, log.Sugared())
		require.Equal(t, isProd, log.IsProd())
		_ = cleanup()
	}
}
