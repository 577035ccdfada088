package transcriber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"chlog/internal/archive"
	"chlog/internal/config"
	"chlog/internal/logging"
	"chlog/internal/match"
	"chlog/internal/services"
	"chlog/internal/textutil"
)

// Stage is the state-store stage key for generated transcripts.
const Stage = "transcribe"

// Segment is one timed span of recognized speech.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// SpeechClient produces timed transcript segments for an audio file.
type SpeechClient interface {
	Transcribe(ctx context.Context, path string) ([]Segment, error)
}

type openAIClient struct {
	client   *openai.Client
	model    string
	language string
}

func (c *openAIClient) Transcribe(ctx context.Context, path string) ([]Segment, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: path,
		Language: c.language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, Stage, "create transcription", "speech API request failed", err)
	}
	segments := make([]Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, Segment{Start: s.Start, End: s.End, Text: s.Text})
	}
	return segments, nil
}

// NewSpeechClient builds a Whisper-compatible client from configuration.
func NewSpeechClient(cfg config.Speech) (SpeechClient, error) {
	if cfg.APIKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, Stage, "build client", "speech api_key is not set", nil)
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	return &openAIClient{
		client:   openai.NewClientWithConfig(clientConfig),
		model:    cfg.Model,
		language: cfg.Language,
	}, nil
}

// Result aggregates one transcription run.
type Result struct {
	Transcribed int
	Skipped     int
	Errors      int
}

// Transcriber generates transcripts for audio files that have no official
// one, writing timed segment lines next to the audio.
type Transcriber struct {
	client SpeechClient
	store  *archive.Store
	logger *slog.Logger
}

// New constructs a transcriber around a speech client.
func New(client SpeechClient, store *archive.Store, logger *slog.Logger) *Transcriber {
	return &Transcriber{
		client: client,
		store:  store,
		logger: logging.NewComponentLogger(logger, "transcriber"),
	}
}

// Process walks the show folder's year subdirectories and transcribes every
// audio file that has neither an official transcript nor a previously
// generated one. Per-file failures are logged and counted, not fatal.
func (t *Transcriber) Process(ctx context.Context, showKey, folder string) (*Result, error) {
	if _, err := os.Stat(folder); err != nil {
		return nil, services.Wrap(services.ErrValidation, Stage, "validate folder", fmt.Sprintf("podcast folder %s is not accessible", folder), err)
	}
	logger := logging.WithContext(ctx, t.logger)

	files, err := listAudioFiles(folder)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		base := TranscriptBase(path)
		if base == "" {
			continue
		}
		if hasTranscript(filepath.Dir(path), base) {
			result.Skipped++
			continue
		}

		item := itemKey(folder, path)
		done, err := t.store.Completed(ctx, showKey, Stage, item)
		if err != nil {
			return result, err
		}
		if done {
			result.Skipped++
			continue
		}

		logger.Info("transcribing", logging.String("file", filepath.Base(path)))
		segments, err := t.client.Transcribe(ctx, path)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return result, err
			}
			result.Errors++
			logger.Warn("transcription failed", logging.String("file", filepath.Base(path)), logging.Error(err))
			continue
		}

		if err := writeTranscript(filepath.Dir(path), base, segments); err != nil {
			result.Errors++
			logger.Warn("transcript write failed", logging.String("file", filepath.Base(path)), logging.Error(err))
			continue
		}
		if err := t.store.MarkCompleted(ctx, showKey, Stage, item); err != nil {
			return result, err
		}
		result.Transcribed++
	}

	return result, nil
}

// TranscriptBase derives the transcript filename stem for an audio file:
// the extension and any bracketed identifier are dropped, then filesystem
// metacharacters are removed.
func TranscriptBase(path string) string {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return textutil.SanitizeFileName(textutil.StripBracketed(stem))
}

func hasTranscript(dir, base string) bool {
	for _, ext := range []string{".txt", ".md"} {
		if _, err := os.Stat(filepath.Join(dir, base+"_transcript"+ext)); err == nil {
			return true
		}
	}
	return false
}

func writeTranscript(dir, base string, segments []Segment) error {
	var b strings.Builder
	for _, s := range segments {
		fmt.Fprintf(&b, "[%.2f --> %.2f] %s\n", s.Start, s.End, strings.TrimSpace(s.Text))
	}
	content := []byte(b.String())
	for _, ext := range []string{".txt", ".md"} {
		if err := os.WriteFile(filepath.Join(dir, base+"_transcript"+ext), content, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// listAudioFiles returns audio files in the folder's immediate year
// subdirectories plus any still sitting at the top level, sorted.
func listAudioFiles(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, Stage, "list folder", fmt.Sprintf("cannot read %s", folder), err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			if match.IsAudioFile(entry.Name()) {
				files = append(files, filepath.Join(folder, entry.Name()))
			}
			continue
		}
		sub, err := os.ReadDir(filepath.Join(folder, entry.Name()))
		if err != nil {
			return nil, err
		}
		for _, inner := range sub {
			if !inner.IsDir() && match.IsAudioFile(inner.Name()) {
				files = append(files, filepath.Join(folder, entry.Name(), inner.Name()))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func itemKey(folder, path string) string {
	rel, err := filepath.Rel(folder, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
