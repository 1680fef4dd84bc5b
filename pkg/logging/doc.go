// Package logging provides structured logging utilities for collectors.
//
// # Overview
//
// This package wraps the standard library slog package with defaults shared by
// all collectors. It supports environment-based log level configuration,
// module/version context injection, and source location tracking for debug logs.
//
// A collector's stdout belongs to the line protocol, so collectors normally log
// through SetDefaultCollectorLogger, which frames slog records as protocol log
// lines. The stderr JSON loggers are for tooling that runs outside the platform.
//
// # Features
//
//   - Protocol log lines on stdout for collectors
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Logging from a collector (recommended):
//
//	func main() {
//	    logging.SetDefaultCollectorLogger(protocol.Default())
//	    slog.Debug("checking units", "count", 3)
//	    // {"type":"log","level":"debug","msg":"checking units count=3"}
//	}
//
// Setting a stderr JSON logger:
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("sysmar", "v1.0.0")
//	    defer slog.Info("application started")
//
//	    // Use slog as normal
//	    slog.Info("processing request", "id", "req-123")
//	    slog.Debug("detailed state", "data", complexObject)
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("sysmar", "v2.0.0", "debug")
//	logger.Info("collector starting", "units", 4)
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("sysmar", "v1.0.0", "warn")
//
// Converting standard library logger:
//
//	stdLogger := logging.NewLogLogger(slog.LevelInfo, false)
//	stdLogger.Println("legacy log message")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug sysmar collect
//	LOG_LEVEL=error sysmar discover
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "collector started",
//	    "module": "sysmar",
//	    "version": "v1.0.0",
//	    "units": 4
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "main.collect",
//	        "file": "main.go",
//	        "line": 45
//	    },
//	    "msg": "reading unit",
//	    "module": "sysmar",
//	    "version": "v1.0.0"
//	}
//
// # Best Practices
//
// 1. Set default logger early in main():
//
//	func main() {
//	    logging.SetDefaultCollectorLogger(protocol.Default())
//	    defer slog.Info("application started")
//	    // ...
//	}
//
// 2. Include context in log messages:
//
//	slog.Info("unit collected",
//	    "unit", "ssh.service",
//	    "state", "active",
//	    "duration_ms", 12,
//	)
//
// 3. Use appropriate log levels:
//
//	slog.Debug("unit skipped", "unit", u) // Development/troubleshooting
//	slog.Info("collector started")        // Normal operations
//	slog.Warn("command not found")        // Potential issues
//	slog.Error("dbus connection failed")  // Errors requiring action
//
// 4. Log errors with context:
//
//	slog.Error("failed to read unit",
//	    "error", err,
//	    "unit", unit,
//	)
//
// # Integration
//
// This package is used by:
//   - cmd/sysmar - collector entrypoints
//   - pkg/collector - Data collection logging
//   - pkg/schedule - entrypoint dispatch
//
// All components share consistent logging format and configuration.
package logging
