package contextkeys

import (
	"context"

	"github.com/google/uuid"
)

type traceIDKeyType struct{}
type runIDKeyType struct{}

var (
	traceIDKey = traceIDKeyType{}
	runIDKey   = runIDKeyType{}
)

// ContextWithTraceID помещает trace_id в контекст
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext извлекает trace_id из контекста.
// Возвращает пустую строку, если trace_id не найден
func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// ContextWithRunID помещает идентификатор запуска конвейера в контекст
func ContextWithRunID(ctx context.Context, runID uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext возвращает uuid.Nil, если запуск не привязан к контексту
func RunIDFromContext(ctx context.Context) uuid.UUID {
	if runID, ok := ctx.Value(runIDKey).(uuid.UUID); ok {
		return runID
	}
	return uuid.Nil
}
