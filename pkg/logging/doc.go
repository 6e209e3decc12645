// Package logging provides structured logging configuration for logcapture.
//
// This package wraps log/slog to provide consistent logging for the capture
// window lifecycle and the logcheck CLI. It is distinct from the log entries
// being captured, which are plain values in package logentry.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	})
//
//	logger.Debug("capture window opened", "buffer", id)
//
// # Integration
//
// Components accept a *slog.Logger through an option. If none is provided,
// they use logging.Nop().
//
// MultiHandler fans a record out to several handlers; the slog source uses it
// to keep the previous default handler working while capturing.
package logging
