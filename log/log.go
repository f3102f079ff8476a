// Package log constructs zap loggers used by txfactory commands.
package log

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// ConsoleEncoding writes human readable lines.
	ConsoleEncoding = "console"
	// JSONEncoding writes one json object per line.
	JSONEncoding = "json"
)

// where logs go by default.
var logWriter io.Writer = os.Stdout

// NewEncoder returns an encoder for the encoding name.
func NewEncoder(encoding string) (zapcore.Encoder, error) {
	switch encoding {
	case ConsoleEncoding, "":
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), nil
	case JSONEncoding:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	default:
		return nil, fmt.Errorf("unknown log encoding %q", encoding)
	}
}

// NewWithLevel creates a logger with a fixed level and with a set of (optional) hooks.
func NewWithLevel(name string,
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	hooks ...func(zapcore.Entry) error,
) *zap.Logger {
	return newWithWriter(logWriter, name, level, encoder, hooks...)
}

func newWithWriter(w io.Writer, name string,
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	hooks ...func(zapcore.Entry) error,
) *zap.Logger {
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(zapcore.RegisterHooks(core, hooks...)).Named(name)
}

// New parses level and encoding and returns a named logger.
func New(name, level, encoding string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	encoder, err := NewEncoder(encoding)
	if err != nil {
		return nil, err
	}
	return NewWithLevel(name, lvl, encoder), nil
}

// WithContext returns logger with fields attached to ctx.
func WithContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}
