// Package services defines the shared error taxonomy and context plumbing used
// across pipeline stages.
//
// Errors are classified by wrapping them with sentinel markers so callers can
// distinguish fatal document-level failures (malformed feed, empty feed, bad
// configuration) from recoverable per-file failures that are aggregated into
// the run report instead of aborting the batch.
package services
