// Package logging configures structured logging for the fixtures tools.
//
// It wraps log/slog so the loader, the watcher and the CLI share one
// setup:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Error("fixture not found", "path", "users/list", "error", err)
//
// Missing-fixture diagnostics are logged at error level, one record per
// failed read.
//
// Components accept a *slog.Logger and tag it with Component. Use Nop
// when output should be discarded, and Tee to copy entries as JSON to a
// second writer such as a log file.
package logging
