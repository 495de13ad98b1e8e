package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

type Field = zapcore.Field

var (
	Int    = zap.Int
	String = zap.String
	Bool   = zap.Bool
	Error  = zap.Error
	Any    = zap.Any
)

type LoggerI interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Panic(msg string, fields ...Field)
}

type loggerImpl struct {
	zap *zap.Logger
}

func (l *loggerImpl) Debug(msg string, fields ...Field) { l.zap.Debug(msg, fields...) }
func (l *loggerImpl) Info(msg string, fields ...Field)  { l.zap.Info(msg, fields...) }
func (l *loggerImpl) Warn(msg string, fields ...Field)  { l.zap.Warn(msg, fields...) }
func (l *loggerImpl) Error(msg string, fields ...Field) { l.zap.Error(msg, fields...) }
func (l *loggerImpl) Panic(msg string, fields ...Field) { l.zap.Panic(msg, fields...) }

func NewLogger(namespace, level string) LoggerI {
	zapLevel := zapcore.DebugLevel
	switch level {
	case LevelInfo:
		zapLevel = zapcore.InfoLevel
	case LevelWarn:
		zapLevel = zapcore.WarnLevel
	case LevelError:
		zapLevel = zapcore.ErrorLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		zap.NewAtomicLevelAt(zapLevel),
	)

	return &loggerImpl{
		zap: zap.New(core, zap.AddCaller()).Named(namespace),
	}
}

// Cleanup flushes buffered log entries. Call it with defer from main.
func Cleanup(l LoggerI) error {
	if impl, ok := l.(*loggerImpl); ok {
		return impl.zap.Sync()
	}

	return nil
}
