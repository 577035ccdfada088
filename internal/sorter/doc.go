// Package sorter organizes downloaded podcast audio into per-year
// subdirectories using parsed feed metadata.
//
// A run matches each top-level audio file to an episode, groups matches by
// publication year, creates the year directories, and moves files in. A file
// whose name already exists at the destination is skipped, a failed move is
// counted and the batch continues, and unmatched files stay where they are.
// Dry-run reports identical match results without touching the filesystem.
package sorter
