// Package observability provides structured logging for the advisor.
package observability

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gigaverse-labs/advisor/internal/config"
)

// ServiceName is attached to every log line.
const ServiceName = "advisor"

// NewLogger creates a structured logger from the given logging configuration.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns an unsampled zap.Logger named ServiceName or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	zapCfg, err := loggerConfig(cfg)
	if err != nil {
		return nil, err
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named(ServiceName), nil
}

// loggerConfig maps cfg onto a zap.Config. Sampling is off: every decision
// line is part of the audit trail, and identical messages arrive at high rates.
func loggerConfig(cfg config.LoggingConfig) (zap.Config, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return zap.Config{}, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Sampling = nil
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	zapCfg.InitialFields = map[string]interface{}{"service": ServiceName}
	return zapCfg, nil
}

// WithDecision returns a child logger for one decision. Every line it writes
// carries the decision's kind and ID, so log lines join against the audit table.
func WithDecision(logger *zap.Logger, kind string, id uuid.UUID) *zap.Logger {
	return logger.Named("decision").With(
		zap.String("decision_kind", kind),
		zap.Stringer("decision_id", id),
	)
}
