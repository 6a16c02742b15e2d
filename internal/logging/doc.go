// Package logging provides structured logging for tabshell.
//
// It wraps log/slog to write JSON lines, one file per log directory. While
// the TUI owns the terminal all logging goes to {dir}/debug.log; command-line
// subcommands may log to stderr instead.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR), changeable at runtime
//   - Context propagation (session ID, tab key, document key)
//   - Size-based rotation of debug.log when it is opened
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(dir, logging.LevelInfo)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("workspace restored", "tabs", 4)
//
// # Context Propagation
//
//	sessionLogger := logger.WithSession(uuid.NewString())
//	docLogger := sessionLogger.WithDocument(key)
//	docLogger.Warn("load failed", "path", path, "error", err)
//
// Output:
//
//	{"time":"...","level":"WARN","msg":"load failed","session_id":"...","document_key":"3v1","path":"a.png","error":"..."}
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. Child loggers share
// the parent's writer and level.
package logging
