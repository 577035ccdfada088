// Package transcriber generates timed transcripts for sorted episode audio
// through a Whisper-compatible speech API, skipping episodes that already
// have an official or previously generated transcript.
package transcriber
