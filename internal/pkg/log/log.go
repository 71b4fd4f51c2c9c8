package log

import (
	"context"
	"fmt"
	"sync"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}

type logger struct {
	zap *otelzap.Logger
}

var (
	instance *logger
	once     sync.Once
)

// SetupLogger builds the production zap logger used by every component.
func SetupLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Setup returns an otelzap logger for handlers and middleware.
func Setup() *otelzap.Logger {
	return otelzap.New(SetupLogger())
}

func Init(l *zap.Logger) {
	once.Do(func() {
		instance = &logger{zap: otelzap.New(l)}
	})
}

func GetLogger() Logger {
	if instance == nil {
		Init(SetupLogger())
	}
	return instance
}

func (l *logger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.zap.Ctx(ctx).Debug(msg, fields(args)...)
}

func (l *logger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.zap.Ctx(ctx).Info(msg, fields(args)...)
}

func (l *logger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.zap.Ctx(ctx).Warn(msg, fields(args)...)
}

func (l *logger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.zap.Ctx(ctx).Error(msg, fields(args)...)
}

func fields(args []interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case zap.Field:
			out = append(out, v)
		case error:
			out = append(out, zap.Error(v))
		default:
			out = append(out, zap.Any(fmt.Sprintf("arg%d", i), v))
		}
	}
	return out
}
