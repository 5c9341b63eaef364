// Package logging provides structured logging using uber/zap.
//
// This package offers production-ready logging with two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The level and mode come from configuration (LOG_LEVEL, LOG_DEV); an
// invalid level falls back to the mode's default.
//
// Example Usage:
//
//	logger := logging.NewFromSettings(cfg.Logging.Level, cfg.Logging.Development)
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Error("Failed to move entry", zap.String("name", name), zap.Error(err))
package logging
