package transcripts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"chlog/internal/archive"
	"chlog/internal/catalog"
	"chlog/internal/config"
	"chlog/internal/feed"
	"chlog/internal/logging"
	"chlog/internal/services"
	"chlog/internal/textutil"
)

// Stage keys recorded in the state store.
const (
	StageTranscripts = "transcripts"
	StageNotes       = "notes"
)

// Result aggregates one fetch run.
type Result struct {
	Downloaded int
	Skipped    int
	Missing    int
	Errors     int
}

// Fetcher downloads per-episode documents from a raw GitHub repository and
// stores them next to the episode audio. The transcripts and show-notes
// repositories share the same layout, so one fetcher serves both.
type Fetcher struct {
	stage   string
	suffix  string
	baseURL string
	client  *http.Client
	store   *archive.Store
	logger  *slog.Logger
}

// NewFetcher constructs a fetcher for official episode transcripts.
func NewFetcher(cfg *config.Config, store *archive.Store, logger *slog.Logger) *Fetcher {
	return newFetcher(StageTranscripts, "_transcript", cfg.Transcripts.TranscriptsBaseURL, cfg, store, logger)
}

// NewNotesFetcher constructs a fetcher for official show notes.
func NewNotesFetcher(cfg *config.Config, store *archive.Store, logger *slog.Logger) *Fetcher {
	return newFetcher(StageNotes, "_notes", cfg.Transcripts.NotesBaseURL, cfg, store, logger)
}

func newFetcher(stage, suffix, baseURL string, cfg *config.Config, store *archive.Store, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		stage:   stage,
		suffix:  suffix,
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(cfg.Transcripts.TimeoutSeconds) * time.Second},
		store:   store,
		logger:  logging.NewComponentLogger(logger, stage),
	}
}

// Process downloads the document for every episode that has one and is not
// yet recorded in the state store. An episode whose document is absent
// upstream is counted but not marked, so a later stage can generate one
// instead. Per-episode failures never abort the run.
func (f *Fetcher) Process(ctx context.Context, show catalog.Show, folder string, episodes []feed.Episode) (*Result, error) {
	if !show.Official {
		return nil, services.Wrap(services.ErrValidation, f.stage, "validate show", fmt.Sprintf("%s has no official %s", show.Key, f.stage), nil)
	}
	logger := logging.WithContext(ctx, f.logger)

	completed, err := f.store.CompletedItems(ctx, show.Key, f.stage)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, episode := range episodes {
		id := episode.ID()
		if id == "" {
			continue
		}
		if _, done := completed[id]; done {
			result.Skipped++
			continue
		}
		// A document already on disk (e.g. after a rebuilt state database)
		// is recorded, not downloaded again.
		if DocumentExists(folder, episode, f.suffix) {
			if err := f.store.MarkCompleted(ctx, show.Key, f.stage, id); err != nil {
				return result, err
			}
			result.Skipped++
			continue
		}

		content, found, err := f.download(ctx, show, id)
		if err != nil {
			result.Errors++
			logger.Warn("download failed", logging.String("episode", id), logging.Error(err))
			continue
		}
		if !found {
			result.Missing++
			logger.Debug("no official document", logging.String("episode", id))
			continue
		}

		if err := SaveEpisodeDocument(folder, episode, f.suffix, content); err != nil {
			result.Errors++
			logger.Warn("save failed", logging.String("episode", id), logging.Error(err))
			continue
		}
		if err := f.store.MarkCompleted(ctx, show.Key, f.stage, id); err != nil {
			return result, err
		}
		result.Downloaded++
		logger.Info("document saved", logging.String("episode", id), logging.String("title", episode.Title))
	}

	return result, nil
}

func (f *Fetcher) download(ctx context.Context, show catalog.Show, episodeID string) (string, bool, error) {
	url := fmt.Sprintf("%s/%s/%s-%s.md", f.baseURL, show.GitHubFolder, show.FilenamePrefix, episodeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", false, err
		}
		return string(body), true, nil
	case http.StatusNotFound:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("fetch returned HTTP %d", resp.StatusCode)
	}
}

// EpisodeDir returns the directory an episode's files live in: the show
// folder's year subdirectory when the published year is known.
func EpisodeDir(folder string, episode feed.Episode) string {
	if episode.Year > 0 {
		return filepath.Join(folder, strconv.Itoa(episode.Year))
	}
	return folder
}

// SaveEpisodeDocument writes content as both .md and .txt under the episode's
// year directory, replacing any previously generated version.
func SaveEpisodeDocument(folder string, episode feed.Episode, suffix, content string) error {
	dir := EpisodeDir(folder, episode)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	base := textutil.SanitizeFileName(episode.Title) + suffix
	for _, ext := range []string{".md", ".txt"} {
		if err := os.WriteFile(filepath.Join(dir, base+ext), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// DocumentExists reports whether an episode document with the given suffix is
// already present in the episode's year directory.
func DocumentExists(folder string, episode feed.Episode, suffix string) bool {
	dir := EpisodeDir(folder, episode)
	base := textutil.SanitizeFileName(episode.Title) + suffix
	for _, ext := range []string{".md", ".txt"} {
		if _, err := os.Stat(filepath.Join(dir, base+ext)); err == nil {
			return true
		}
	}
	return false
}
