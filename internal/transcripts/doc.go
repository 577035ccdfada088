// Package transcripts downloads official per-episode documents (transcripts
// and show notes) from the Changelog GitHub repositories and files them
// alongside the sorted audio, tracking completed episodes in the archive
// store.
package transcripts
