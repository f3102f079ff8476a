package log

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func testEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	return zapcore.NewConsoleEncoder(cfg)
}

func TestLogLevel(t *testing.T) {
	var hooked int
	hook := func(entry zapcore.Entry) error {
		hooked++
		require.Equal(t, zapcore.InfoLevel, entry.Level)
		return nil
	}
	var buf bytes.Buffer
	logger := newWithWriter(&buf, "logtest", zap.NewAtomicLevelAt(zapcore.InfoLevel), testEncoder(), hook)

	logger.Debug("test001")
	require.Zero(t, buf.Len())

	logger.Info("test002")
	require.Equal(t, "INFO\tlogtest\ttest002\n", buf.String())
	buf.Reset()

	logger.Named("sub").Info("test003", zap.String("step", "staking_bond"))
	require.Equal(t, "INFO\tlogtest.sub\ttest003\t{\"step\": \"staking_bond\"}\n", buf.String())
	require.Equal(t, 2, hooked)
}

func TestNew(t *testing.T) {
	logger, err := New("txfactory", "debug", JSONEncoding)
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = New("txfactory", "loud", ConsoleEncoding)
	require.Error(t, err)
	_, err = New("txfactory", "info", "xml")
	require.ErrorContains(t, err, "xml")
}

func TestRunContext(t *testing.T) {
	require.Empty(t, ContextFields(context.Background()))

	ctx := WithRunID(context.Background(), "run-1", zap.Int("workers", 2))
	id, ok := ExtractRunID(ctx)
	require.True(t, ok)
	require.Equal(t, "run-1", id)
	require.Equal(t, []zap.Field{zap.String("run_id", "run-1"), zap.Int("workers", 2)}, ContextFields(ctx))

	var buf bytes.Buffer
	logger := newWithWriter(&buf, "ctx", zap.NewAtomicLevelAt(zapcore.InfoLevel), testEncoder())
	WithContext(ctx, logger).Info("started")
	require.Contains(t, buf.String(), `"run_id": "run-1"`)

	first, _ := ExtractRunID(WithNewRunID(context.Background()))
	second, _ := ExtractRunID(WithNewRunID(context.Background()))
	require.NotEqual(t, first, second)
	require.Len(t, first, 36)
}

func TestFatalError(t *testing.T) {
	reason := errors.New("permission denied")
	err := ErrEnsureDataDir(reason)
	require.ErrorIs(t, err, reason)
	require.Equal(t, "could not open/create data dir: permission denied", err.Error())

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, err.MarshalLogObject(enc))
	require.Equal(t, "ERR_ENSURE_DATA_DIR", enc.Fields["code"])
}
