// Package logging provides structured logging for the runtime and
// its demo commands.
//
// This package wraps zap with the initialization policy a terminal UI
// needs: silent by default, and never writing to stdout, because
// stdout is the UI. When enabled, logs go to a file.
//
// # Configuration
//
// Logging is controlled by two environment variables:
//
//   - FRANKENTUI_LOG_LEVEL: "debug", "info", "warn" or "error".
//     Unset or empty means no logging at all.
//   - FRANKENTUI_LOG_FILE: the file logs are appended to. Defaults
//     to frankentui.log in the working directory when a level is set.
//
// Initialize at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//	log := logging.GetLogger()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying
// zap logger handles synchronization automatically.
package logging
