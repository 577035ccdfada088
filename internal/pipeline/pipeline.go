package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"chlog/internal/archive"
	"chlog/internal/catalog"
	"chlog/internal/config"
	"chlog/internal/feed"
	"chlog/internal/logging"
	"chlog/internal/services"
	"chlog/internal/sorter"
	"chlog/internal/summarizer"
	"chlog/internal/transcriber"
	"chlog/internal/transcripts"
)

// Options selects which stages a run executes. The zero value runs
// everything the show supports.
type Options struct {
	DryRun         bool
	SkipTranscribe bool
	SkipSummarize  bool
}

// Runner executes the full per-show pipeline: feed fetch, sorting,
// official document download, transcription, and summarization.
type Runner struct {
	cfg    *config.Config
	store  *archive.Store
	speech transcriber.SpeechClient
	chat   summarizer.ChatClient
	logger *slog.Logger

	// feedURL overrides the catalog feed endpoint when non-empty.
	feedURL string
}

// New constructs a pipeline runner. The speech and chat clients may be nil
// when their stages are skipped.
func New(cfg *config.Config, store *archive.Store, speech transcriber.SpeechClient, chat summarizer.ChatClient, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		store:  store,
		speech: speech,
		chat:   chat,
		logger: logger,
	}
}

// Run executes every applicable stage for the named show. Concurrent runs
// against the same show folder are rejected through a lock file.
func (r *Runner) Run(ctx context.Context, showKey string, opts Options) error {
	show, err := catalog.Lookup(showKey)
	if err != nil {
		return err
	}
	if !show.HasFeed() {
		return services.Wrap(services.ErrValidation, "pipeline", "validate show", fmt.Sprintf("%s has no feed to process", show.Key), nil)
	}

	ctx = services.WithRunID(ctx, uuid.NewString())
	ctx = services.WithShow(ctx, show.Key)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(r.logger, "pipeline"))

	folder := r.cfg.ShowDir(show.Folder)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return services.Wrap(services.ErrValidation, "pipeline", "prepare folder", fmt.Sprintf("cannot create %s", folder), err)
	}

	lock := flock.New(filepath.Join(folder, ".chlog.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrTransient, "pipeline", "acquire lock", "cannot acquire show lock", err)
	}
	if !locked {
		return services.Wrap(services.ErrValidation, "pipeline", "acquire lock", fmt.Sprintf("another run is already processing %s", show.Key), nil)
	}
	defer lock.Unlock()

	logger.Info("run started", logging.String("folder", folder), logging.Bool("dry_run", opts.DryRun))
	start := time.Now()

	episodes, err := r.fetchFeed(services.WithStage(ctx, "feed"), show)
	if err != nil {
		return err
	}

	report, err := sorter.New(r.logger).Organize(services.WithStage(ctx, "sort"), episodes, folder, opts.DryRun)
	if err != nil {
		return err
	}
	logger.Info("sorting finished",
		logging.Int("matched", report.Matched),
		logging.Int("unmatched", len(report.Unmatched)),
		logging.Int("moved", report.Moved))
	if opts.DryRun {
		logger.Info("dry run, later stages skipped")
		return nil
	}

	if show.Official {
		stageCtx := services.WithStage(ctx, transcripts.StageTranscripts)
		if _, err := transcripts.NewFetcher(r.cfg, r.store, r.logger).Process(stageCtx, show, folder, episodes); err != nil {
			return err
		}
	} else {
		logger.Info("show has no official documents, fetch stages skipped")
	}

	if !opts.SkipTranscribe && r.speech != nil {
		stageCtx := services.WithStage(ctx, transcriber.Stage)
		if _, err := transcriber.New(r.speech, r.store, r.logger).Process(stageCtx, show.Key, folder); err != nil {
			return err
		}
	}

	if show.Official {
		stageCtx := services.WithStage(ctx, transcripts.StageNotes)
		if _, err := transcripts.NewNotesFetcher(r.cfg, r.store, r.logger).Process(stageCtx, show, folder, episodes); err != nil {
			return err
		}
	}

	if !opts.SkipSummarize && r.chat != nil {
		stageCtx := services.WithStage(ctx, summarizer.Stage)
		if _, err := summarizer.New(r.chat, r.store, r.cfg.Summarizer.MaxChunkTokens, r.logger).Process(stageCtx, show.Key, folder); err != nil {
			return err
		}
	}

	logger.Info("run finished", logging.Duration("elapsed", time.Since(start)))
	return nil
}

func (r *Runner) fetchFeed(ctx context.Context, show catalog.Show) ([]feed.Episode, error) {
	url := show.FeedURL
	if r.feedURL != "" {
		url = r.feedURL
	}
	timeout := time.Duration(r.cfg.Transcripts.TimeoutSeconds) * time.Second
	data, err := feed.Fetch(ctx, url, timeout)
	if err != nil {
		return nil, err
	}
	episodes, err := feed.NewParser(r.logger).Parse(data)
	if err != nil {
		return nil, err
	}
	if len(episodes) == 0 {
		return nil, services.Wrap(services.ErrEmptyFeed, "pipeline", "fetch feed", fmt.Sprintf("feed for %s contains no episodes", show.Key), nil)
	}
	return episodes, nil
}
