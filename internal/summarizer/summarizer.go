package summarizer

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
	"chlog/internal/services"
)

// Stage is the state-store stage key for generated summaries.
const Stage = "summarize"

const summaryPrompt = "Summarize the following podcast transcript excerpt as a concise bullet list of the main topics, guests, and takeaways. Keep each bullet short.\n\n"

// ChatClient produces a summary for one transcript chunk.
type ChatClient interface {
	Summarize(ctx context.Context, chunk string) (string, error)
}

type openAIClient struct {
	client *openai.Client
	model  string
}

func (c *openAIClient) Summarize(ctx context.Context, chunk string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: summaryPrompt + chunk},
		},
	})
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, Stage, "create completion", "chat API request failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// NewChatClient builds a chat-completion client from configuration.
func NewChatClient(cfg config.Summarizer) (ChatClient, error) {
	if cfg.APIKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, Stage, "build client", "summarizer api_key is not set", nil)
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	return &openAIClient{client: openai.NewClientWithConfig(clientConfig), model: cfg.Model}, nil
}

// Result aggregates one summarization run.
type Result struct {
	Summarized int
	Skipped    int
	Errors     int
}

// Summarizer writes bullet-list summaries for transcript files that do not
// have one yet.
type Summarizer struct {
	client         ChatClient
	store          *archive.Store
	maxChunkTokens int
	logger         *slog.Logger
}

// New constructs a summarizer around a chat client.
func New(client ChatClient, store *archive.Store, maxChunkTokens int, logger *slog.Logger) *Summarizer {
	if maxChunkTokens <= 0 {
		maxChunkTokens = 2000
	}
	return &Summarizer{
		client:         client,
		store:          store,
		maxChunkTokens: maxChunkTokens,
		logger:         logging.NewComponentLogger(logger, "summarizer"),
	}
}

// Process walks the show folder's year subdirectories and summarizes every
// transcript file that has no summary yet. Summary, notes, and corrected
// files are never treated as input. Per-file failures are logged and
// counted, not fatal.
func (s *Summarizer) Process(ctx context.Context, showKey, folder string) (*Result, error) {
	if _, err := os.Stat(folder); err != nil {
		return nil, services.Wrap(services.ErrValidation, Stage, "validate folder", fmt.Sprintf("podcast folder %s is not accessible", folder), err)
	}
	logger := logging.WithContext(ctx, s.logger)

	files, err := listTranscripts(folder)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		base := SummaryBase(path)
		if hasSummary(filepath.Dir(path), base) {
			result.Skipped++
			continue
		}

		item := itemKey(folder, path)
		done, err := s.store.Completed(ctx, showKey, Stage, item)
		if err != nil {
			return result, err
		}
		if done {
			result.Skipped++
			continue
		}

		summary, err := s.summarizeFile(ctx, path)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return result, err
			}
			result.Errors++
			logger.Warn("summarization failed", logging.String("file", filepath.Base(path)), logging.Error(err))
			continue
		}

		if err := writeSummary(filepath.Dir(path), base, summary); err != nil {
			result.Errors++
			logger.Warn("summary write failed", logging.String("file", filepath.Base(path)), logging.Error(err))
			continue
		}
		if err := s.store.MarkCompleted(ctx, showKey, Stage, item); err != nil {
			return result, err
		}
		result.Summarized++
		logger.Info("summary saved", logging.String("file", filepath.Base(path)))
	}

	return result, nil
}

func (s *Summarizer) summarizeFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New("transcript is empty")
	}

	var parts []string
	for _, chunk := range SplitChunks(text, s.maxChunkTokens) {
		part, err := s.client.Summarize(ctx, chunk)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "\n\n"), nil
}

// SplitChunks splits text into word-boundary chunks of roughly maxTokens
// each, approximating tokens by whitespace-separated words.
func SplitChunks(text string, maxTokens int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	for start := 0; start < len(words); start += maxTokens {
		end := start + maxTokens
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}

// SummaryBase derives the summary filename stem from a transcript path.
func SummaryBase(path string) string {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimSuffix(stem, "_transcript")
}

func hasSummary(dir, base string) bool {
	for _, ext := range []string{".txt", ".md"} {
		if _, err := os.Stat(filepath.Join(dir, base+"_summary"+ext)); err == nil {
			return true
		}
	}
	return false
}

func writeSummary(dir, base, summary string) error {
	content := []byte(summary + "\n")
	for _, ext := range []string{".txt", ".md"} {
		if err := os.WriteFile(filepath.Join(dir, base+"_summary"+ext), content, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// listTranscripts returns transcript files in the folder's immediate year
// subdirectories plus the top level, excluding summaries, show notes, and
// manually corrected versions. Only the .txt rendition of each transcript is
// returned so a transcript stored as both .txt and .md is summarized once.
func listTranscripts(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, Stage, "list folder", fmt.Sprintf("cannot read %s", folder), err)
	}

	var files []string
	collect := func(dir string, entry os.DirEntry) {
		if entry.IsDir() || !isTranscriptFile(entry.Name()) {
			return
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			collect(folder, entry)
			continue
		}
		dir := filepath.Join(folder, entry.Name())
		sub, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, inner := range sub {
			collect(dir, inner)
		}
	}
	sort.Strings(files)
	return files, nil
}

func isTranscriptFile(name string) bool {
	if !strings.HasSuffix(name, "_transcript.txt") {
		return false
	}
	for _, marker := range []string{"_summary", "_notes", "corrected"} {
		if strings.Contains(name, marker) {
			return false
		}
	}
	return true
}

func itemKey(folder, path string) string {
	rel, err := filepath.Rel(folder, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
