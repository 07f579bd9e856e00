package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RequestID(ctx))

	ctx = WithRequestID(ctx, "abc-123")
	assert.Equal(t, "abc-123", RequestID(ctx))
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	Logger(context.Background()).Info("plain")
	Logger(WithRequestID(context.Background(), "abc-123")).Info("tagged")

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 2) {
		assert.Empty(t, entries[0].ContextMap())
		assert.Equal(t, map[string]interface{}{"request_id": "abc-123"}, entries[1].ContextMap())
	}
}
