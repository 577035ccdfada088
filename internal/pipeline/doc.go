// Package pipeline runs the per-show processing chain end to end: fetch the
// RSS feed, sort downloads into year directories, pull official transcripts
// and show notes, then transcribe and summarize what remains.
package pipeline
