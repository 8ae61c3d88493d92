package core

import (
	"os"

	"go.lumeweb.com/queuemailer/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.Logger
	level *zap.AtomicLevel
	cm    config.Manager
}

func NewLogger(cm config.Manager) *Logger {
	atomicLevel := zap.NewAtomicLevel()

	if cm != nil && cm.Config() != nil {
		atomicLevel.SetLevel(mapLogLevel(cm.Config().Core.Log.Level))
	} else {
		atomicLevel.SetLevel(mapLogLevel("debug"))
	}

	zapLogger := zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		atomicLevel,
	), zap.AddCaller())

	return &Logger{
		Logger: zapLogger,
		level:  &atomicLevel,
		cm:     cm,
	}
}

// NewNopLogger returns a logger that drops everything, for tests and library callers without config.
func NewNopLogger() *Logger {
	atomicLevel := zap.NewAtomicLevelAt(zapcore.ErrorLevel)

	return &Logger{
		Logger: zap.NewNop(),
		level:  &atomicLevel,
	}
}

func (l *Logger) SetLevelFromConfig() {
	if l.cm != nil && l.cm.Config() != nil {
		l.level.SetLevel(mapLogLevel(l.cm.Config().Core.Log.Level))
	}
}

func (l *Logger) Level() *zap.AtomicLevel {
	return l.level
}

func mapLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
