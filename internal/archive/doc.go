// Package archive persists pipeline stage completion state in SQLite so
// rerunning a stage skips work it already finished.
//
// One row records one (show, stage, item) completion. Items are filenames or
// episode identifiers depending on the stage; the store itself is agnostic.
package archive
