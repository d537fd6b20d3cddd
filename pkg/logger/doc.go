// Package logger provides a structured logging interface for mastodiary.
//
// It wraps the zerolog library behind a small Logger interface with support for:
//   - Log levels (debug, info, warn, error, disabled)
//   - Structured fields via WithField / WithFields / WithError
//   - Human readable console output on stderr
//   - JSON lines appended to a log file when logging.file is set
//
// Basic Usage:
//
//	if err := logger.Initialize(&cfg.Logging); err != nil {
//	    return err
//	}
//
//	logger.GetLogger().WithField("host", "mastodon.social").Info("resolving profile")
//
// Tests use NewTestLogger to capture messages, or NewNopLogger to discard them.
package logger
