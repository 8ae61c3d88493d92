package db

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	dbLogger "gorm.io/gorm/logger"
)

var _ dbLogger.Interface = (*gormLogger)(nil)

var (
	levels = map[dbLogger.LogLevel]zapcore.Level{
		dbLogger.Silent: zapcore.FatalLevel,
		dbLogger.Error:  zapcore.ErrorLevel,
		dbLogger.Warn:   zapcore.WarnLevel,
		dbLogger.Info:   zapcore.DebugLevel,
	}
)

type gormLogger struct {
	logger *zap.Logger
	level  *zap.AtomicLevel
}

// LogMode returns a logger with its own level so gorm's Debug() never changes the root logger.
func (l gormLogger) LogMode(level dbLogger.LogLevel) dbLogger.Interface {
	zapLevel, ok := levels[level]
	if !ok {
		zapLevel = zapcore.InfoLevel
	}

	atomicLevel := zap.NewAtomicLevelAt(zapLevel)

	return gormLogger{logger: l.logger, level: &atomicLevel}
}

func (l gormLogger) Info(ctx context.Context, s string, i ...interface{}) {
	l.logger.Info(s, interfacesToFields(i...)...)
}

func (l gormLogger) Warn(ctx context.Context, s string, i ...interface{}) {
	l.logger.Warn(s, interfacesToFields(i...)...)
}

func (l gormLogger) Error(ctx context.Context, s string, i ...interface{}) {
	l.logger.Error(s, interfacesToFields(i...)...)
}

func (l gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level.Level() > zap.DebugLevel {
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}

	sql, rowsAffected := fc()
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows_affected", rowsAffected),
		zap.Duration("elapsed", time.Since(begin)),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.logger.Debug("trace", fields...)
}

func newLogger(zlog *zap.Logger, zlogLevel *zap.AtomicLevel) *gormLogger {
	return &gormLogger{logger: zlog, level: zlogLevel}
}

func interfacesToFields(i ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(i))
	for idx, v := range i {
		fields = append(fields, zap.Any(strconv.Itoa(idx), v))
	}
	return fields
}
