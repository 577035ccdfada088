package transcripts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chlog/internal/archive"
	"chlog/internal/catalog"
	"chlog/internal/config"
	"chlog/internal/feed"
	"chlog/internal/logging"
)

func testShow(t *testing.T) catalog.Show {
	t.Helper()
	show, err := catalog.Lookup("gotime")
	if err != nil {
		t.Fatalf("lookup gotime: %v", err)
	}
	return show
}

func testFetcher(t *testing.T, baseURL string) (*Fetcher, *archive.Store) {
	t.Helper()
	store, err := archive.Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	cfg.Transcripts.TranscriptsBaseURL = baseURL
	cfg.Transcripts.TimeoutSeconds = 5
	return NewFetcher(&cfg, store, logging.NewNop()), store
}

func testEpisode(title, id string, year int) feed.Episode {
	return feed.Episode{
		Title:       title,
		Link:        "https://changelog.com/gotime/" + id,
		PublishedAt: time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC),
		Year:        year,
	}
}

func TestProcessDownloadsTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gotime/go-time-312.md" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("**Host:** Welcome back."))
	}))
	defer server.Close()

	fetcher, store := testFetcher(t, server.URL)
	folder := t.TempDir()
	show := testShow(t)
	episodes := []feed.Episode{testEpisode("Generics in practice", "312", 2024)}

	result, err := fetcher.Process(context.Background(), show, folder, episodes)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Downloaded != 1 {
		t.Fatalf("downloaded = %d, want 1", result.Downloaded)
	}

	for _, ext := range []string{".md", ".txt"} {
		path := filepath.Join(folder, "2024", "Generics in practice_transcript"+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if string(data) != "**Host:** Welcome back." {
			t.Errorf("unexpected content in %s: %q", path, data)
		}
	}

	done, err := store.Completed(context.Background(), show.Key, StageTranscripts, "312")
	if err != nil {
		t.Fatalf("completed: %v", err)
	}
	if !done {
		t.Error("episode not marked completed")
	}
}

func TestProcessSkipsCompletedEpisodes(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("transcript"))
	}))
	defer server.Close()

	fetcher, store := testFetcher(t, server.URL)
	show := testShow(t)
	if err := store.MarkCompleted(context.Background(), show.Key, StageTranscripts, "100"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	result, err := fetcher.Process(context.Background(), show, t.TempDir(), []feed.Episode{testEpisode("Old episode", "100", 2020)})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Skipped != 1 || result.Downloaded != 0 {
		t.Fatalf("result = %+v, want 1 skipped", result)
	}
	if requests != 0 {
		t.Errorf("server hit %d times for a completed episode", requests)
	}
}

func TestProcessLeavesMissingTranscriptsUnmarked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer server.Close()

	fetcher, store := testFetcher(t, server.URL)
	show := testShow(t)

	result, err := fetcher.Process(context.Background(), show, t.TempDir(), []feed.Episode{testEpisode("Unpublished", "999", 2025)})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Missing != 1 {
		t.Fatalf("missing = %d, want 1", result.Missing)
	}

	done, err := store.Completed(context.Background(), show.Key, StageTranscripts, "999")
	if err != nil {
		t.Fatalf("completed: %v", err)
	}
	if done {
		t.Error("missing transcript must stay pending for the transcribe stage")
	}
}

func TestProcessIsolatesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gotime/go-time-1.md" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	fetcher, _ := testFetcher(t, server.URL)
	episodes := []feed.Episode{
		testEpisode("Broken", "1", 2023),
		testEpisode("Fine", "2", 2023),
	}

	result, err := fetcher.Process(context.Background(), testShow(t), t.TempDir(), episodes)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Errors != 1 || result.Downloaded != 1 {
		t.Fatalf("result = %+v, want 1 error and 1 download", result)
	}
}

func TestNotesFetcherUsesNotesSuffixAndStage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("- Links from the episode"))
	}))
	defer server.Close()

	store, err := archive.Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	cfg := config.Default()
	cfg.Transcripts.NotesBaseURL = server.URL
	cfg.Transcripts.TimeoutSeconds = 5
	fetcher := NewNotesFetcher(&cfg, store, logging.NewNop())

	folder := t.TempDir()
	show := testShow(t)
	if _, err := fetcher.Process(context.Background(), show, folder, []feed.Episode{testEpisode("Show notes", "7", 2022)}); err != nil {
		t.Fatalf("process: %v", err)
	}

	if _, err := os.Stat(filepath.Join(folder, "2022", "Show notes_notes.md")); err != nil {
		t.Fatalf("notes file: %v", err)
	}
	done, err := store.Completed(context.Background(), show.Key, StageNotes, "7")
	if err != nil {
		t.Fatalf("completed: %v", err)
	}
	if !done {
		t.Error("notes stage not recorded")
	}
}

func TestProcessRejectsUnofficialShows(t *testing.T) {
	fetcher, _ := testFetcher(t, "http://unused.invalid")
	show, err := catalog.Lookup("practicalai")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if _, err := fetcher.Process(context.Background(), show, t.TempDir(), nil); err == nil {
		t.Fatal("expected error for show without official transcripts")
	}
}
