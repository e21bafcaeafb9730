// Package logger provides the prefix- and colour-tagged leveled logger used by
// every component of the service.
package logger

import (
	"errors"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const colorReset = "\033[0m"

var (
	ErrEmptyPrefix = errors.New("logger prefix is required")
	ErrNilWriter   = errors.New("logger writer is required")

	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// SetLevel changes the minimum level of every logger. Accepts zap level names
// such as "debug", "info", "warn" and "error".
func SetLevel(name string) error {
	return level.UnmarshalText([]byte(name))
}

// Logger writes "<time> <LEVEL> [PREFIX] message" lines.
type Logger struct {
	z *zap.Logger
}

// New creates a logger that tags every line with prefix in colour.
func New(prefix, colour string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	if w == nil {
		return nil, ErrNilWriter
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.CallerKey = zapcore.OmitKey
	encCfg.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + colour + name + colorReset + "]")
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return &Logger{z: zap.New(core).Named(prefix)}, nil
}

func (l *Logger) Info(msg string) {
	l.z.Info(msg)
}

func (l *Logger) Warning(msg string) {
	l.z.Warn(msg)
}

func (l *Logger) Error(msg string) {
	l.z.Error(msg)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}
