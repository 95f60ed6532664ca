// Package logging builds the application's zap logger and the adapters that
// route third-party log output (gorm, backlite) through it.
package logging

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mrlokans/carrental/internal/config"
)

// New builds a logger from the logging configuration.
// Unknown levels fall back to info; format "json" selects the production encoder.
func New(cfg config.Logging) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = level > zapcore.DebugLevel

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Gorm adapts a zap logger to gorm's logger interface.
// SQL statements are only traced when the logger is at debug level.
func Gorm(logger *zap.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if logger.Core().Enabled(zapcore.DebugLevel) {
		level = gormlogger.Info
	}

	return gormlogger.New(
		zap.NewStdLog(logger.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// TaskLogger implements backlite.Logger on top of zap.
type TaskLogger struct {
	log *zap.SugaredLogger
}

// NewTaskLogger returns a backlite-compatible logger.
func NewTaskLogger(logger *zap.Logger) *TaskLogger {
	return &TaskLogger{log: logger.Named("tasks").Sugar()}
}

func (l *TaskLogger) Info(message string, params ...any) {
	l.log.Infow(message, params...)
}

func (l *TaskLogger) Error(message string, params ...any) {
	l.log.Errorw(message, params...)
}
