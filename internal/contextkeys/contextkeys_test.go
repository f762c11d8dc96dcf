package contextkeys

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLoggerFromContext_DefaultsToNoop(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	assert.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.WithFields(nil).Error("ignored", nil, nil)
	})
}

func TestTraceAndRunID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", TraceIDFromContext(ctx))
	assert.Equal(t, uuid.Nil, RunIDFromContext(ctx))

	runID := uuid.New()
	ctx = ContextWithRunID(ContextWithTraceID(ctx, "trace-1"), runID)
	assert.Equal(t, "trace-1", TraceIDFromContext(ctx))
	assert.Equal(t, runID, RunIDFromContext(ctx))
}
