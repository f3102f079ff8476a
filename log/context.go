package log

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type correlationIDType int

const (
	runIDKey correlationIDType = iota
	runFieldsKey
)

// WithRunID returns a context which knows the identifier of the run.
// A run is a single invocation of a command, fields are printed in
// contextual logs together with the identifier.
func WithRunID(ctx context.Context, runID string, fields ...zap.Field) context.Context {
	ctx = context.WithValue(ctx, runIDKey, runID)
	if len(fields) > 0 {
		ctx = context.WithValue(ctx, runFieldsKey, fields)
	}
	return ctx
}

// WithNewRunID does the same thing as WithRunID but generates a new random identifier.
func WithNewRunID(ctx context.Context, fields ...zap.Field) context.Context {
	return WithRunID(ctx, uuid.NewString(), fields...)
}

// ExtractRunID extracts the run identifier from a context object.
func ExtractRunID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok
}

// ContextFields returns the run identifier and fields stored in ctx.
func ContextFields(ctx context.Context) []zap.Field {
	id, ok := ExtractRunID(ctx)
	if !ok {
		return nil
	}
	fields := []zap.Field{zap.String("run_id", id)}
	if extra, ok := ctx.Value(runFieldsKey).([]zap.Field); ok {
		fields = append(fields, extra...)
	}
	return fields
}
