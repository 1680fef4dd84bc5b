// Package errors provides structured error types for better observability
// and programmatic error handling across collector code.
//
// Telemetry validation failures are reported as ErrCodeInvalidRequest with the
// offending field recorded in the error context:
//
//	if err := metric.Validate(); err != nil {
//	    slog.Debug("dropping metric", "field", errors.Field(err), "reason", errors.Message(err))
//	}
//
// Command and check failures wrap their cause:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "failed to run check",
//	    ctx.Err(),
//	    map[string]any{
//	        "command": "smartctl",
//	    },
//	)
package errors
