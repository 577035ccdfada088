package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"chlog/internal/catalog"
	"chlog/internal/logging"
	"chlog/internal/pipeline"
	"chlog/internal/services"
	"chlog/internal/summarizer"
	"chlog/internal/transcriber"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var skipTranscribe bool
	var skipSummarize bool
	var all bool

	cmd := &cobra.Command{
		Use:   "run [show]",
		Short: "Run the full pipeline for a show",
		Long: `Run fetches the show's RSS feed, sorts downloaded episodes into year
directories, downloads official transcripts and show notes where the show
has them, then transcribes and summarizes episodes that are still missing
those documents. Stage state is tracked so reruns only do new work.

With --all, every show in the catalog that has a feed is processed in turn.
Transient per-show failures are reported and skipped; fatal ones stop the
batch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("provide exactly one show key or --all")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logFile, err := logging.LogFileWriter(cfg.Paths.LogDir, "chlog.log")
			if err != nil {
				return err
			}
			defer logFile.Close()
			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Writer: io.MultiWriter(os.Stderr, logFile),
			})
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var speech transcriber.SpeechClient
			if !skipTranscribe && cfg.Speech.APIKey != "" {
				if speech, err = transcriber.NewSpeechClient(cfg.Speech); err != nil {
					return err
				}
			}
			var chat summarizer.ChatClient
			if !skipSummarize && cfg.Summarizer.APIKey != "" {
				if chat, err = summarizer.NewChatClient(cfg.Summarizer); err != nil {
					return err
				}
			}

			runner := pipeline.New(cfg, store, speech, chat, logger)
			opts := pipeline.Options{
				DryRun:         dryRun,
				SkipTranscribe: skipTranscribe,
				SkipSummarize:  skipSummarize,
			}
			if !all {
				return runner.Run(cmd.Context(), args[0], opts)
			}

			var failed int
			for _, key := range catalog.Keys() {
				show, err := catalog.Lookup(key)
				if err != nil || !show.HasFeed() {
					continue
				}
				if err := runner.Run(cmd.Context(), key, opts); err != nil {
					if services.Fatal(err) || errors.Is(err, context.Canceled) {
						return err
					}
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "run %s: %v\n", key, err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d show(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Stop after reporting what sorting would do")
	cmd.Flags().BoolVar(&skipTranscribe, "skip-transcribe", false, "Skip the transcription stage")
	cmd.Flags().BoolVar(&skipSummarize, "skip-summarize", false, "Skip the summarization stage")
	cmd.Flags().BoolVar(&all, "all", false, "Process every show in the catalog")
	return cmd
}
