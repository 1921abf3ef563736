// Package logger builds the zap loggers used by the climb tools.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a logger from cfg. When cfg.File is set, entries are written
// as json into a file rotated by size, otherwise they are written to stderr
// in a human readable form.
func New(cfg Config) (*zap.Logger, error) {
	level := new(zapcore.Level)
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
	}
	var (
		encoder zapcore.Encoder
		writer  zapcore.WriteSyncer
	)
	if cfg.File == "" {
		encoder = zapcore.NewConsoleEncoder(getEncoderConfig())
		writer = zapcore.Lock(os.Stderr)
	} else {
		encoder = zapcore.NewJSONEncoder(getEncoderConfig())
		writer = getLogWriter(cfg)
	}
	core := zapcore.NewCore(encoder, writer, level)
	return zap.New(core, zap.AddCaller()), nil
}

// Must is like New but falls back to a no-op logger on error.
func Must(cfg Config) *zap.Logger {
	logger, err := New(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func getEncoderConfig() zapcore.EncoderConfig {
	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.TimeKey = "time"
	encodeConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encodeConfig.EncodeDuration = zapcore.SecondsDurationEncoder
	encodeConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encodeConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return encodeConfig
}

func getLogWriter(cfg Config) zapcore.WriteSyncer {
	rotate := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxAge:     cfg.MaxAge,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
	return zapcore.AddSync(rotate)
}
