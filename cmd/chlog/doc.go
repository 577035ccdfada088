// Package main hosts the chlog CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into feed
// sorting runs, official document downloads, transcription and summarization
// stages, and configuration scaffolding. It centralizes configuration
// resolution and structured logging setup so subcommands can focus on user
// experience instead of wiring.
package main
