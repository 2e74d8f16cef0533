package observ

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink describes an optional rotating log file written next to stdout.
type FileSink struct {
	Path      string
	MaxSizeMB int
	MaxFiles  int
}

func NewLogger(env, level string) (*zap.Logger, error) {
	return NewLoggerWithSink(env, level, FileSink{})
}

// NewLoggerWithSink builds the process logger. When sink.Path is set every
// entry is also written, JSON encoded, to a lumberjack-rotated file.
func NewLoggerWithSink(env, level string, sink FileSink) (*zap.Logger, error) {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	if sink.Path == "" {
		return logger, nil
	}

	if sink.MaxSizeMB <= 0 {
		sink.MaxSizeMB = 10
	}
	if sink.MaxFiles <= 0 {
		sink.MaxFiles = 5
	}
	writer := &lumberjack.Logger{
		Filename:   sink.Path,
		MaxSize:    sink.MaxSizeMB,
		MaxBackups: sink.MaxFiles,
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(writer),
		config.Level,
	)

	return logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	})), nil
}
