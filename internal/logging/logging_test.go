package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mrlokans/carrental/internal/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{"debug", "debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"warn uppercase", "WARN", zapcore.WarnLevel, zapcore.InfoLevel},
		{"unknown falls back to info", "chatty", zapcore.InfoLevel, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(config.Logging{Level: tt.level, Format: "json"})
			require.NoError(t, err)

			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.muted))
		})
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	logger, err := New(config.Logging{Level: "info", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestTaskLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tl := NewTaskLogger(zap.New(core))

	tl.Info("task processed", "queue", "export_listing")
	tl.Error("task failed", "queue", "export_listing", "error", "boom")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "task processed", entries[0].Message)
	assert.Equal(t, "export_listing", entries[0].ContextMap()["queue"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestGorm_DebugEnablesTrace(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	assert.NotNil(t, Gorm(zap.New(core)))
}
