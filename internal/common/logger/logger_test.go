package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestZapAdapter_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "evaluate-installer-quote"})

	log.Info("quote evaluated", map[string]interface{}{"bucket": "fair"})
	log.WithError(errors.New("redis down")).Warn("audit append failed", nil)

	entries := logs.All()
	assert.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "evaluate-installer-quote", first["taskType"])
	assert.Equal(t, "fair", first["bucket"])

	second := entries[1].ContextMap()
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "redis down", second["error"])
}

func TestNoOpAndTestLoggers(t *testing.T) {
	NewNoOpLogger().Error("dropped", map[string]interface{}{"k": 1})
	NewTestLogger(t).Debug("visible in -v output", nil)
}
