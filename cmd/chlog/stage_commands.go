package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"chlog/internal/archive"
	"chlog/internal/catalog"
	"chlog/internal/config"
	"chlog/internal/feed"
	"chlog/internal/summarizer"
	"chlog/internal/transcriber"
	"chlog/internal/transcripts"
)

func newTranscriptsCommand(ctx *commandContext) *cobra.Command {
	return newFetchDocumentsCommand(ctx, "transcripts", "Download official transcripts for a show", transcripts.NewFetcher)
}

func newNotesCommand(ctx *commandContext) *cobra.Command {
	return newFetchDocumentsCommand(ctx, "notes", "Download official show notes for a show", transcripts.NewNotesFetcher)
}

func newFetchDocumentsCommand(ctx *commandContext, use, short string, build fetcherFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <show>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			show, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			episodes, err := fetchEpisodes(cmd, show, cfg.Transcripts.TimeoutSeconds, logger)
			if err != nil {
				return err
			}

			result, err := build(cfg, store, logger).Process(cmd.Context(), show, cfg.ShowDir(show.Folder), episodes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %d, skipped %d, missing %d, errors %d\n",
				result.Downloaded, result.Skipped, result.Missing, result.Errors)
			return nil
		},
	}
}

type fetcherFunc func(cfg *config.Config, store *archive.Store, logger *slog.Logger) *transcripts.Fetcher

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <show>",
		Short: "Generate transcripts for episodes without one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			show, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			client, err := transcriber.NewSpeechClient(cfg.Speech)
			if err != nil {
				return err
			}

			result, err := transcriber.New(client, store, logger).Process(cmd.Context(), show.Key, cfg.ShowDir(show.Folder))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transcribed %d, skipped %d, errors %d\n",
				result.Transcribed, result.Skipped, result.Errors)
			return nil
		},
	}
}

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <show>",
		Short: "Summarize transcripts that have no summary yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			show, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			client, err := summarizer.NewChatClient(cfg.Summarizer)
			if err != nil {
				return err
			}

			result, err := summarizer.New(client, store, cfg.Summarizer.MaxChunkTokens, logger).Process(cmd.Context(), show.Key, cfg.ShowDir(show.Folder))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Summarized %d, skipped %d, errors %d\n",
				result.Summarized, result.Skipped, result.Errors)
			return nil
		},
	}
}

func fetchEpisodes(cmd *cobra.Command, show catalog.Show, timeoutSeconds int, logger *slog.Logger) ([]feed.Episode, error) {
	if !show.HasFeed() {
		return nil, fmt.Errorf("show %s has no feed", show.Key)
	}
	data, err := feed.Fetch(cmd.Context(), show.FeedURL, time.Duration(timeoutSeconds)*time.Second)
	if err != nil {
		return nil, err
	}
	return feed.NewParser(logger).Parse(data)
}
