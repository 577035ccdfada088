// Package logging configures structured logging for the CLI and pipeline
// stages on top of log/slog.
//
// It provides a console handler for interactive use, a JSON handler for
// machine consumption, helper attribute constructors, and context plumbing
// that threads run, show, and stage identifiers through stage loggers.
package logging
