// Package logging builds the slog loggers used across nazar.
//
// It provides a console handler for interactive use, a JSON handler for
// machine consumption, and helpers for attaching standardized attributes
// (component, channel, video/comment identifiers) to log records.
package logging
