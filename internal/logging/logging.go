// Package logging builds the process-wide zap logger from configuration.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a logger for the given mode, "development" or "production".
func New(mode string) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	switch mode {
	case "development":
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stdout"}
		logger, err = cfg.Build()
	case "production":
		logger, err = zap.NewProduction()
	default:
		return nil, fmt.Errorf("logging: unknown mode %q", mode)
	}
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}
