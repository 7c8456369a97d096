package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how the process logger is built
type Options struct {
	Development bool
	Level       string // debug, info, warn, error
	Encoding    string // console or json
}

// New creates a new zap logger
func New(development bool) (*zap.Logger, error) {
	return Build(Options{Development: development})
}

// Build creates a zap logger from opts. Development mode always logs at debug.
func Build(opts Options) (*zap.Logger, error) {
	var cfg zap.Config

	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.Sampling = nil

		if opts.Level != "" {
			lvl, err := zapcore.ParseLevel(opts.Level)
			if err != nil {
				return nil, fmt.Errorf("parsing log level: %w", err)
			}
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	if opts.Encoding != "" {
		cfg.Encoding = opts.Encoding
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// Must creates a logger or panics
func Must(development bool) *zap.Logger {
	log, err := New(development)
	if err != nil {
		panic(err)
	}
	return log
}
