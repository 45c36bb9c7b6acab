// Package logger builds the zap logger of the command line tool.
package logger

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatHuman = "human"
	FormatJSON  = "json"
)

// Config contains the logger settings.
type Config struct {
	// Debug enables debug level logging.
	Debug bool
	// Format is "json" or "human".
	Format string
	// File receives a copy of the logs when set.
	File string
}

// New builds a logger writing to stderr, so generated output piped from stdout stays clean.
func New(cfg Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if cfg.Format == FormatJSON {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	outputPaths := []string{"stderr"}
	if cfg.File != "" {
		err := os.MkdirAll(filepath.Dir(cfg.File), 0o755)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create log directory")
		}

		outputPaths = append(outputPaths, cfg.File)
	}

	zapConfig.OutputPaths = outputPaths
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	if cfg.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}

	return logger, nil
}
