// Package logging adapts zap to the domain Logger interface.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tmakino/opskit/internal/domain/interfaces"
)

// ZapLogger implements interfaces.Logger on top of a zap sugared logger
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger creates a production logger. When debug is set the level
// drops to debug and output switches to the human-readable console encoder.
func NewZapLogger(debug bool) (*ZapLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return &ZapLogger{sugar: logger.Sugar()}, nil
}

// NewNopZapLogger creates a logger that discards everything
func NewNopZapLogger() *ZapLogger {
	return &ZapLogger{sugar: zap.NewNop().Sugar()}
}

// Debug logs debug-level messages
func (l *ZapLogger) Debug(msg string, fields ...interfaces.Field) {
	l.sugar.Debugw(msg, flatten(fields)...)
}

// Info logs informational messages
func (l *ZapLogger) Info(msg string, fields ...interfaces.Field) {
	l.sugar.Infow(msg, flatten(fields)...)
}

// Warn logs warning messages
func (l *ZapLogger) Warn(msg string, fields ...interfaces.Field) {
	l.sugar.Warnw(msg, flatten(fields)...)
}

// Error logs error messages
func (l *ZapLogger) Error(msg string, fields ...interfaces.Field) {
	l.sugar.Errorw(msg, flatten(fields)...)
}

// Sync flushes buffered log entries
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

// flatten converts domain fields into zap's alternating key/value form
func flatten(fields []interfaces.Field) []interface{} {
	kv := make([]interface{}, 0, len(fields)*2)
	for _, f := range fields {
		kv = append(kv, f.Key, f.Value)
	}
	return kv
}
