package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	stageKey contextKey = "stage"
	showKey  contextKey = "show"
)

// WithRunID attaches a run identifier to the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier, if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// WithStage attaches the current pipeline stage name to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext extracts the pipeline stage name, if present.
func StageFromContext(ctx context.Context) (string, bool) {
	stage, ok := ctx.Value(stageKey).(string)
	return stage, ok && stage != ""
}

// WithShow attaches the podcast key being processed to the context.
func WithShow(ctx context.Context, show string) context.Context {
	return context.WithValue(ctx, showKey, show)
}

// ShowFromContext extracts the podcast key, if present.
func ShowFromContext(ctx context.Context) (string, bool) {
	show, ok := ctx.Value(showKey).(string)
	return show, ok && show != ""
}
