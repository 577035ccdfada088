// Package summarizer produces bullet-list episode summaries from transcript
// files through a chat-completion API, splitting long transcripts into
// word-budgeted chunks.
package summarizer
