// Package logging provides structured logging setup shared by the sema
// library and CLI.
//
// It wraps the standard library slog package with project defaults:
// structured JSON to stderr, environment-based log level configuration
// (LOG_LEVEL), module/version context on every record, and source location
// tracking at debug level.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("sema", version)
//
//	    slog.Info("resolving service", "service", "payments")
//	}
package logging
